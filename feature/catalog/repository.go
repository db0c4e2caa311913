package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"

	"catalog-manager/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repository executes single-entity and cascading writes and reads against
// the catalog store. Every call either runs on a caller-supplied transaction
// (tx non-nil: the caller owns commit and rollback) or opens its own
// transaction and commits or rolls back before returning.
type Repository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRepository creates a repository on the shared database handle.
func NewRepository(db *gorm.DB, logger *zap.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// Transaction runs fn inside a single transaction on the shared handle.
// Batch writers (reconciliation import, withdrawal delete) use this to get
// all-or-nothing semantics across many repository calls.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.ownTransaction(ctx, "transaction", fn)
}

// ownTransaction wraps fn in a transaction the repository owns, logging and
// wrapping any failure. Errors already wrapped by an inner call pass through.
func (r *Repository) ownTransaction(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	if err := r.db.WithContext(ctx).Transaction(fn); err != nil {
		r.logger.Error("repository operation failed",
			zap.String("op", op),
			zap.Error(err),
		)
		var pe *PersistenceError
		if errors.As(err, &pe) {
			return err
		}
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}

//
// journals
//

// JournalFilter selects journals for deletion. The first set criterion wins;
// an empty filter deletes nothing.
type JournalFilter struct {
	ID          int64
	EISSN       string
	PublisherID int64
}

func (f JournalFilter) empty() bool {
	return f.ID == 0 && f.EISSN == "" && f.PublisherID == 0
}

// JournalOrderField is a sortable journal listing column.
type JournalOrderField string

const (
	OrderByTitle     JournalOrderField = "title"
	OrderByPublisher JournalOrderField = "publisher"
	OrderByEISSN     JournalOrderField = "e_issn"
	OrderByPrintISSN JournalOrderField = "print_issn"
)

func (f JournalOrderField) column() string {
	switch f {
	case OrderByTitle:
		return "journal.title"
	case OrderByPublisher:
		return "publisher.name"
	case OrderByEISSN:
		return "journal.e_issn"
	case OrderByPrintISSN:
		return "journal.print_issn"
	default:
		return ""
	}
}

// JournalOrder pairs an order field with its direction.
type JournalOrder struct {
	Field JournalOrderField
	Desc  bool
}

// JournalQuery holds the read filters for ReadJournals.
type JournalQuery struct {
	Keyword     string
	OnlyActive  bool
	PublisherID int64
	EISSN       string
	ID          int64
	Order       []JournalOrder
	Limit       int

	// Publishers, when set, resolves each journal's Publisher from the index.
	// Shallow attaches only id and name.
	Publishers map[int64]*models.Publisher
	Shallow    bool
}

// SaveJournal inserts the journal when it carries no id, populating the
// generated id on j, and updates by id otherwise. Updates never touch the
// publisher assignment.
func (r *Repository) SaveJournal(ctx context.Context, j *models.Journal, tx *gorm.DB) error {
	if tx != nil {
		return r.saveJournal(tx.WithContext(ctx), j)
	}
	return r.ownTransaction(ctx, "save journal", func(tx *gorm.DB) error {
		return r.saveJournal(tx, j)
	})
}

func (r *Repository) saveJournal(tx *gorm.DB, j *models.Journal) error {
	if !j.Persisted() {
		j.ID = 0
		if j.Publisher != nil && j.PublisherID == 0 {
			j.PublisherID = j.Publisher.ID
		}
		if err := tx.Create(j).Error; err != nil {
			return &PersistenceError{Op: "insert journal", Err: err}
		}
		return nil
	}

	updates := map[string]any{
		"title":      j.Title,
		"link":       j.URL,
		"print_issn": j.PrintISSN,
		"e_issn":     j.EISSN,
		"valid_till": j.ValidTill,
	}
	if err := tx.Model(&models.Journal{}).Where("id = ?", j.ID).Updates(updates).Error; err != nil {
		return &PersistenceError{Op: "update journal", Err: err}
	}
	return nil
}

// DeleteJournals removes journals matching the filter and returns the number
// of affected rows. An empty filter is a no-op, never an unconditional delete.
func (r *Repository) DeleteJournals(ctx context.Context, f JournalFilter, tx *gorm.DB) (int64, error) {
	if f.empty() {
		return 0, nil
	}
	if tx != nil {
		return r.deleteJournals(tx.WithContext(ctx), f)
	}
	var rows int64
	err := r.ownTransaction(ctx, "delete journals", func(tx *gorm.DB) error {
		var err error
		rows, err = r.deleteJournals(tx, f)
		return err
	})
	return rows, err
}

// DeleteJournal removes a single journal by identifier.
func (r *Repository) DeleteJournal(ctx context.Context, id int64, tx *gorm.DB) (int64, error) {
	return r.DeleteJournals(ctx, JournalFilter{ID: id}, tx)
}

func (r *Repository) deleteJournals(tx *gorm.DB, f JournalFilter) (int64, error) {
	q := tx
	switch {
	case f.ID != 0:
		q = q.Where("id = ?", f.ID)
	case f.EISSN != "":
		q = q.Where("e_issn = ?", f.EISSN)
	case f.PublisherID != 0:
		q = q.Where("publisher_id = ?", f.PublisherID)
	}
	res := q.Delete(&models.Journal{})
	if res.Error != nil {
		return 0, &PersistenceError{Op: "delete journals", Err: res.Error}
	}
	return res.RowsAffected, nil
}

// ReadJournals lists journals matching the query.
func (r *Repository) ReadJournals(ctx context.Context, q JournalQuery, tx *gorm.DB) ([]models.Journal, error) {
	handle := r.db.WithContext(ctx)
	if tx != nil {
		handle = tx.WithContext(ctx)
	}

	list, err := r.readJournals(handle, q)
	if err != nil {
		r.logger.Error("repository operation failed",
			zap.String("op", "read journals"),
			zap.Error(err),
		)
	}
	return list, err
}

func (r *Repository) readJournals(tx *gorm.DB, q JournalQuery) ([]models.Journal, error) {
	stmt := tx.Table("journal").
		Select("journal.id, journal.title, journal.link, journal.print_issn, journal.e_issn, journal.valid_till, journal.publisher_id").
		Joins("LEFT JOIN publisher ON journal.publisher_id = publisher.id")

	if q.OnlyActive {
		stmt = stmt.Where("journal.valid_till >= CURDATE()")
	}
	if q.Keyword != "" {
		// Titles are stored with both '&' and 'and' spellings, so the keyword
		// is matched in both variants.
		kw := strings.TrimSpace(q.Keyword)
		expr := "%" + kw + "%"
		kw1 := "%" + strings.ReplaceAll(kw, " &", " and") + "%"
		kw2 := "%" + strings.ReplaceAll(kw, " and", " &") + "%"
		stmt = stmt.Where(
			"journal.title LIKE ? OR journal.title LIKE ? OR journal.title LIKE ? OR journal.print_issn LIKE ? OR journal.e_issn LIKE ? OR publisher.name LIKE ?",
			expr, kw1, kw2, expr, expr, expr,
		)
	}
	if q.PublisherID != 0 {
		stmt = stmt.Where("publisher.id = ?", q.PublisherID)
	}
	if q.EISSN != "" {
		stmt = stmt.Where("journal.e_issn = ?", q.EISSN)
	}
	if q.ID != 0 {
		stmt = stmt.Where("journal.id = ?", q.ID)
	}
	for _, o := range q.Order {
		col := o.Field.column()
		if col == "" {
			continue
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		stmt = stmt.Order(col + " " + dir)
	}
	if q.Limit > 0 {
		stmt = stmt.Limit(q.Limit)
	}

	var list []models.Journal
	if err := stmt.Scan(&list).Error; err != nil {
		return nil, &PersistenceError{Op: "read journals", Err: err}
	}

	if q.Publishers != nil {
		for i := range list {
			p, ok := q.Publishers[list[i].PublisherID]
			if !ok {
				continue
			}
			if q.Shallow {
				list[i].Publisher = &models.Publisher{ID: p.ID, Name: p.Name}
			} else {
				list[i].Publisher = p
			}
		}
	}
	return list, nil
}

//
// publishers
//

// SavePublisher writes the publisher row and replaces all of its links.
// On update every existing link is deleted and the attached ones re-inserted
// inside the same transaction, so stale links never survive a save.
func (r *Repository) SavePublisher(ctx context.Context, p *models.Publisher, tx *gorm.DB) error {
	if tx != nil {
		return r.savePublisher(tx.WithContext(ctx), p)
	}
	return r.ownTransaction(ctx, "save publisher", func(tx *gorm.DB) error {
		return r.savePublisher(tx, p)
	})
}

func (r *Repository) savePublisher(tx *gorm.DB, p *models.Publisher) error {
	if !p.Persisted() {
		p.ID = 0
		if err := tx.Create(p).Error; err != nil {
			return &PersistenceError{Op: "insert publisher", Err: err}
		}
	} else {
		updates := map[string]any{
			"name":                    p.Name,
			"validity":                p.Validity,
			"oa_status":               p.OAStatus,
			"application_requirement": p.ApplicationRequirement,
			"funder_info":             p.FunderInfo,
			"cost_coverage":           p.CostCoverage,
			"valid_tu":                p.ValidTU,
			"article_type":            p.ArticleType,
			"further_info":            p.FurtherInfo,
			"funder_info_en":          p.FunderInfoEN,
			"cost_coverage_en":        p.CostCoverageEN,
			"valid_tu_en":             p.ValidTUEN,
			"article_type_en":         p.ArticleTypeEN,
			"further_info_en":         p.FurtherInfoEN,
			"is_doaj":                 p.IsDOAJ,
			"doaj_linked":             p.DOAJLinked,
		}
		if err := tx.Model(&models.Publisher{}).Where("id = ?", p.ID).Updates(updates).Error; err != nil {
			return &PersistenceError{Op: "update publisher", Err: err}
		}
		if _, err := r.deleteLinks(tx, p.ID); err != nil {
			return err
		}
	}

	for i := range p.Links {
		p.Links[i].ID = 0
		p.Links[i].PublisherID = p.ID
		if err := tx.Create(&p.Links[i]).Error; err != nil {
			return &PersistenceError{Op: "insert link", Err: err}
		}
	}
	return nil
}

// DeletePublisher removes the publisher and cascades to its links, journals
// and uploaded files inside one transaction. Partial cascades are never
// committed. Returns the number of publisher rows removed.
func (r *Repository) DeletePublisher(ctx context.Context, id int64, tx *gorm.DB) (int64, error) {
	if id == 0 {
		return 0, nil
	}
	if tx != nil {
		return r.deletePublisher(tx.WithContext(ctx), id)
	}
	var rows int64
	err := r.ownTransaction(ctx, "delete publisher", func(tx *gorm.DB) error {
		var err error
		rows, err = r.deletePublisher(tx, id)
		return err
	})
	return rows, err
}

func (r *Repository) deletePublisher(tx *gorm.DB, id int64) (int64, error) {
	if _, err := r.deleteLinks(tx, id); err != nil {
		return 0, err
	}
	if _, err := r.deleteJournals(tx, JournalFilter{PublisherID: id}); err != nil {
		return 0, err
	}
	if _, err := r.deleteExcelFiles(tx, ExcelFileFilter{PublisherID: id}); err != nil {
		return 0, err
	}
	res := tx.Where("id = ?", id).Delete(&models.Publisher{})
	if res.Error != nil {
		return 0, &PersistenceError{Op: "delete publisher", Err: res.Error}
	}
	return res.RowsAffected, nil
}

func (r *Repository) deleteLinks(tx *gorm.DB, publisherID int64) (int64, error) {
	if publisherID == 0 {
		return 0, nil
	}
	res := tx.Where("publisher_id = ?", publisherID).Delete(&models.Link{})
	if res.Error != nil {
		return 0, &PersistenceError{Op: "delete links", Err: res.Error}
	}
	return res.RowsAffected, nil
}

// ReadPublishers loads all publishers with their links attached and returns
// them as a sorted list plus an id index. The index is the lookup source for
// journal hydration and withdrawal matching.
func (r *Repository) ReadPublishers(ctx context.Context, tx *gorm.DB) ([]models.Publisher, map[int64]*models.Publisher, error) {
	handle := r.db.WithContext(ctx)
	if tx != nil {
		handle = tx.WithContext(ctx)
	}

	var list []models.Publisher
	if err := handle.Find(&list).Error; err != nil {
		r.logger.Error("repository operation failed",
			zap.String("op", "read publishers"),
			zap.Error(err),
		)
		return nil, nil, &PersistenceError{Op: "read publishers", Err: err}
	}

	var links []models.Link
	if err := handle.Find(&links).Error; err != nil {
		r.logger.Error("repository operation failed",
			zap.String("op", "read links"),
			zap.Error(err),
		)
		return nil, nil, &PersistenceError{Op: "read links", Err: err}
	}

	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].OAStatus < list[j].OAStatus
	})

	index := make(map[int64]*models.Publisher, len(list))
	for i := range list {
		index[list[i].ID] = &list[i]
	}
	for _, l := range links {
		p, ok := index[l.PublisherID]
		if !ok {
			continue
		}
		p.Links = append(p.Links, l)
	}
	for i := range list {
		sort.SliceStable(list[i].Links, func(a, b int) bool {
			return list[i].Links[a].Type.Sort() < list[i].Links[b].Type.Sort()
		})
	}

	return list, index, nil
}

//
// uploaded files
//

// ExcelFileFilter selects uploaded-file rows for deletion. The first set
// criterion wins; an empty filter deletes nothing.
type ExcelFileFilter struct {
	ID          int64
	PublisherID int64
}

func (f ExcelFileFilter) empty() bool {
	return f.ID == 0 && f.PublisherID == 0
}

// ExcelFileQuery holds the read filters for ReadExcelFiles.
type ExcelFileQuery struct {
	ID          int64
	IncludeData bool

	Publishers map[int64]*models.Publisher
}

// SaveExcelFile inserts or updates an uploaded-file record.
func (r *Repository) SaveExcelFile(ctx context.Context, e *models.ExcelFile, tx *gorm.DB) error {
	if tx != nil {
		return r.saveExcelFile(tx.WithContext(ctx), e)
	}
	return r.ownTransaction(ctx, "save excel file", func(tx *gorm.DB) error {
		return r.saveExcelFile(tx, e)
	})
}

func (r *Repository) saveExcelFile(tx *gorm.DB, e *models.ExcelFile) error {
	if e.ID <= 0 {
		e.ID = 0
		if e.Publisher != nil && e.PublisherID == 0 {
			e.PublisherID = e.Publisher.ID
		}
		if err := tx.Create(e).Error; err != nil {
			return &PersistenceError{Op: "insert excel file", Err: err}
		}
		return nil
	}

	updates := map[string]any{
		"name":         e.Name,
		"file":         e.File,
		"valid":        e.Valid,
		"publisher_id": e.PublisherID,
	}
	if err := tx.Model(&models.ExcelFile{}).Where("id = ?", e.ID).Updates(updates).Error; err != nil {
		return &PersistenceError{Op: "update excel file", Err: err}
	}
	return nil
}

// DeleteExcelFiles removes uploaded-file rows matching the filter.
func (r *Repository) DeleteExcelFiles(ctx context.Context, f ExcelFileFilter, tx *gorm.DB) (int64, error) {
	if f.empty() {
		return 0, nil
	}
	if tx != nil {
		return r.deleteExcelFiles(tx.WithContext(ctx), f)
	}
	var rows int64
	err := r.ownTransaction(ctx, "delete excel files", func(tx *gorm.DB) error {
		var err error
		rows, err = r.deleteExcelFiles(tx, f)
		return err
	})
	return rows, err
}

func (r *Repository) deleteExcelFiles(tx *gorm.DB, f ExcelFileFilter) (int64, error) {
	q := tx
	switch {
	case f.ID != 0:
		q = q.Where("id = ?", f.ID)
	case f.PublisherID != 0:
		q = q.Where("publisher_id = ?", f.PublisherID)
	}
	res := q.Delete(&models.ExcelFile{})
	if res.Error != nil {
		return 0, &PersistenceError{Op: "delete excel files", Err: res.Error}
	}
	return res.RowsAffected, nil
}

// ReadExcelFiles lists uploaded-file records. The blob column is only
// selected when IncludeData is set.
func (r *Repository) ReadExcelFiles(ctx context.Context, q ExcelFileQuery, tx *gorm.DB) ([]models.ExcelFile, error) {
	handle := r.db.WithContext(ctx)
	if tx != nil {
		handle = tx.WithContext(ctx)
	}

	cols := "id, name, uploaded, valid, publisher_id"
	if q.IncludeData {
		cols += ", file"
	}
	stmt := handle.Table("excelfilehistory").Select(cols)
	if q.ID != 0 {
		stmt = stmt.Where("id = ?", q.ID)
	}

	var list []models.ExcelFile
	if err := stmt.Order("id ASC").Scan(&list).Error; err != nil {
		r.logger.Error("repository operation failed",
			zap.String("op", "read excel files"),
			zap.Error(err),
		)
		return nil, &PersistenceError{Op: "read excel files", Err: err}
	}

	if q.Publishers != nil {
		for i := range list {
			if p, ok := q.Publishers[list[i].PublisherID]; ok {
				list[i].Publisher = p
			}
		}
	}
	return list, nil
}

//
// settings
//

// SettingFilter selects settings for deletion; an empty filter deletes nothing.
type SettingFilter struct {
	ID int64
}

// ReadSettings loads all settings.
func (r *Repository) ReadSettings(ctx context.Context, tx *gorm.DB) ([]models.Setting, error) {
	handle := r.db.WithContext(ctx)
	if tx != nil {
		handle = tx.WithContext(ctx)
	}

	var list []models.Setting
	if err := handle.Find(&list).Error; err != nil {
		r.logger.Error("repository operation failed",
			zap.String("op", "read settings"),
			zap.Error(err),
		)
		return nil, &PersistenceError{Op: "read settings", Err: err}
	}
	return list, nil
}

// SaveSetting inserts or updates a setting row.
func (r *Repository) SaveSetting(ctx context.Context, s *models.Setting, tx *gorm.DB) error {
	if tx != nil {
		return r.saveSetting(tx.WithContext(ctx), s)
	}
	return r.ownTransaction(ctx, "save setting", func(tx *gorm.DB) error {
		return r.saveSetting(tx, s)
	})
}

func (r *Repository) saveSetting(tx *gorm.DB, s *models.Setting) error {
	if s.ID <= 0 {
		s.ID = 0
		if err := tx.Create(s).Error; err != nil {
			return &PersistenceError{Op: "insert setting", Err: err}
		}
		return nil
	}

	updates := map[string]any{
		"name":     s.Name,
		"value":    s.Value,
		"value_en": s.ValueEN,
		"value_de": s.ValueDE,
	}
	if err := tx.Model(&models.Setting{}).Where("id = ?", s.ID).Updates(updates).Error; err != nil {
		return &PersistenceError{Op: "update setting", Err: err}
	}
	return nil
}

// DeleteSettings removes settings matching the filter.
func (r *Repository) DeleteSettings(ctx context.Context, f SettingFilter, tx *gorm.DB) (int64, error) {
	if f.ID == 0 {
		return 0, nil
	}
	if tx != nil {
		return r.deleteSettings(tx.WithContext(ctx), f)
	}
	var rows int64
	err := r.ownTransaction(ctx, "delete settings", func(tx *gorm.DB) error {
		var err error
		rows, err = r.deleteSettings(tx, f)
		return err
	})
	return rows, err
}

func (r *Repository) deleteSettings(tx *gorm.DB, f SettingFilter) (int64, error) {
	res := tx.Where("id = ?", f.ID).Delete(&models.Setting{})
	if res.Error != nil {
		return 0, &PersistenceError{Op: "delete settings", Err: res.Error}
	}
	return res.RowsAffected, nil
}

// SettingValue returns the value of the named setting, or "" when absent.
func SettingValue(settings []models.Setting, name string) string {
	for _, s := range settings {
		if s.Name == name {
			return s.Value
		}
	}
	return ""
}
