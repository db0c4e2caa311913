package models

import (
	"time"
)

// Journal represents a single catalog record. A Journal with ID <= 0 has not
// been persisted yet; the repository assigns the generated id on insert.
type Journal struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	Title       string    `gorm:"column:title" json:"title"`
	URL         string    `gorm:"column:link" json:"url"`
	PrintISSN   string    `gorm:"column:print_issn" json:"print_issn"`
	EISSN       string    `gorm:"column:e_issn" json:"e_issn"`
	ValidTill   time.Time `gorm:"column:valid_till" json:"valid_till"`
	PublisherID int64     `gorm:"column:publisher_id" json:"publisher_id"`

	// Publisher is resolved by the repository from the publisher index; it is
	// not loaded as a gorm association.
	Publisher *Publisher `gorm:"-" json:"publisher,omitempty"`

	// Dump-only columns. Present in the external export, never persisted.
	AddedOn     string `gorm:"-" json:"added_on,omitempty"`
	LastUpdated string `gorm:"-" json:"last_updated,omitempty"`

	// Withdrawal annotations attached during matching, never persisted.
	WithdrawReason string `gorm:"-" json:"withdraw_reason,omitempty"`
	WithdrawDate   string `gorm:"-" json:"withdraw_date,omitempty"`
}

// TableName overrides the table name for Journal.
func (Journal) TableName() string {
	return "journal"
}

// Persisted reports whether the journal carries a valid database id.
func (j *Journal) Persisted() bool {
	return j.ID > 0
}

// Publisher represents the organization responsible for a set of journals.
// The IsDOAJ and DOAJLinked flags gate withdrawal-driven deletion.
type Publisher struct {
	ID                     int64                  `gorm:"column:id;primaryKey" json:"id"`
	Name                   string                 `gorm:"column:name" json:"name"`
	Validity               string                 `gorm:"column:validity" json:"validity"`
	OAStatus               OAStatus               `gorm:"column:oa_status" json:"oa_status"`
	ApplicationRequirement ApplicationRequirement `gorm:"column:application_requirement" json:"application_requirement"`
	FunderInfo             string                 `gorm:"column:funder_info" json:"funder_info"`
	CostCoverage           string                 `gorm:"column:cost_coverage" json:"cost_coverage"`
	ValidTU                string                 `gorm:"column:valid_tu" json:"valid_tu"`
	ArticleType            string                 `gorm:"column:article_type" json:"article_type"`
	FurtherInfo            string                 `gorm:"column:further_info" json:"further_info"`
	FunderInfoEN           string                 `gorm:"column:funder_info_en" json:"funder_info_en"`
	CostCoverageEN         string                 `gorm:"column:cost_coverage_en" json:"cost_coverage_en"`
	ValidTUEN              string                 `gorm:"column:valid_tu_en" json:"valid_tu_en"`
	ArticleTypeEN          string                 `gorm:"column:article_type_en" json:"article_type_en"`
	FurtherInfoEN          string                 `gorm:"column:further_info_en" json:"further_info_en"`
	IsDOAJ                 bool                   `gorm:"column:is_doaj" json:"is_doaj"`
	DOAJLinked             bool                   `gorm:"column:doaj_linked" json:"doaj_linked"`

	// Links are managed explicitly by the repository (delete + re-insert on
	// save), not as a gorm association.
	Links []Link `gorm:"-" json:"links"`
}

// TableName overrides the table name for Publisher.
func (Publisher) TableName() string {
	return "publisher"
}

// Persisted reports whether the publisher carries a valid database id.
func (p *Publisher) Persisted() bool {
	return p.ID > 0
}

// Link is a typed reference attached to a publisher. The link type's sort key
// is used only for display ordering.
type Link struct {
	ID          int64    `gorm:"column:id;primaryKey" json:"id"`
	PublisherID int64    `gorm:"column:publisher_id" json:"publisher_id"`
	Link        string   `gorm:"column:link" json:"link"`
	Type        LinkType `gorm:"column:linktype" json:"linktype"`
	TextDE      string   `gorm:"column:linktext_de" json:"linktext_de"`
	TextEN      string   `gorm:"column:linktext_en" json:"linktext_en"`
}

// TableName overrides the table name for Link.
func (Link) TableName() string {
	return "link"
}

// ExcelFile is an uploaded spreadsheet kept as history. The raw bytes live in
// a blob column; deletion cascades with the owning publisher.
type ExcelFile struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name" json:"name"`
	File        []byte    `gorm:"column:file" json:"-"`
	Uploaded    time.Time `gorm:"column:uploaded" json:"uploaded"`
	Valid       time.Time `gorm:"column:valid" json:"valid"`
	PublisherID int64     `gorm:"column:publisher_id" json:"publisher_id"`

	Publisher *Publisher `gorm:"-" json:"publisher,omitempty"`
}

// TableName overrides the table name for ExcelFile.
func (ExcelFile) TableName() string {
	return "excelfilehistory"
}

// Setting is a key-value configuration row with localized value variants.
type Setting struct {
	ID      int64  `gorm:"column:id;primaryKey" json:"id"`
	Name    string `gorm:"column:name" json:"name"`
	Value   string `gorm:"column:value" json:"value"`
	ValueEN string `gorm:"column:value_en" json:"value_en"`
	ValueDE string `gorm:"column:value_de" json:"value_de"`
}

// TableName overrides the table name for Setting.
func (Setting) TableName() string {
	return "setting"
}

// Well-known setting names consumed by the feed commands.
const (
	SettingDumpLink    = "doaj_dump_link"
	SettingChangesLink = "doaj_changes_link"
)
