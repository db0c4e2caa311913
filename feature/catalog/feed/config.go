package feed

// Config holds the locations of the external catalog exports. Both can be
// overridden per run by CLI flags or the corresponding settings rows.
type Config struct {
	// DumpURL is the URL of the full catalog dump (delimited text).
	DumpURL string `mapstructure:"dump_url" default:""`
	// ChangesURL is the URL of the changes workbook (xlsx).
	ChangesURL string `mapstructure:"changes_url" default:""`
}
