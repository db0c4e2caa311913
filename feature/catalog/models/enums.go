package models

// OAStatus classifies the open-access model of a publisher.
type OAStatus string

const (
	OAStatusHybrid     OAStatus = "hybrid"
	OAStatusGold       OAStatus = "gold"
	OAStatusGoldHybrid OAStatus = "gold_hybrid"
)

// Valid reports whether the status is one of the known keys.
// An empty status is allowed (legacy rows).
func (s OAStatus) Valid() bool {
	switch s {
	case "", OAStatusHybrid, OAStatusGold, OAStatusGoldHybrid:
		return true
	default:
		return false
	}
}

// Label returns the display label for the status.
func (s OAStatus) Label() string {
	switch s {
	case OAStatusHybrid:
		return "Hybrid"
	case OAStatusGold:
		return "Gold"
	case OAStatusGoldHybrid:
		return "Gold & Hybrid"
	default:
		return ""
	}
}

// ApplicationRequirement states whether publishing requires a prior application.
type ApplicationRequirement string

const (
	ApplicationRequired    ApplicationRequirement = "required"
	ApplicationNotRequired ApplicationRequirement = "not required"
)

// Valid reports whether the requirement is one of the known keys.
func (a ApplicationRequirement) Valid() bool {
	switch a {
	case "", ApplicationRequired, ApplicationNotRequired:
		return true
	default:
		return false
	}
}

// LinkType classifies a publisher link. The sort key orders links for display.
type LinkType string

const (
	LinkTypePublisher  LinkType = "publisher"
	LinkTypeWorkflow   LinkType = "workflow"
	LinkTypeTitlesHTML LinkType = "titles_html"
	LinkTypeTitlesPDF  LinkType = "titles_pdf"
	LinkTypeTitlesXLSX LinkType = "titles_xlsx"
)

// Sort returns the display ordering of the link type. Unknown types sort last.
func (t LinkType) Sort() int {
	switch t {
	case LinkTypePublisher:
		return 0
	case LinkTypeWorkflow:
		return 1
	case LinkTypeTitlesHTML:
		return 2
	case LinkTypeTitlesPDF:
		return 3
	case LinkTypeTitlesXLSX:
		return 4
	default:
		return 5
	}
}

// Valid reports whether the link type is one of the known keys.
func (t LinkType) Valid() bool {
	switch t {
	case LinkTypePublisher, LinkTypeWorkflow, LinkTypeTitlesHTML, LinkTypeTitlesPDF, LinkTypeTitlesXLSX:
		return true
	default:
		return false
	}
}
