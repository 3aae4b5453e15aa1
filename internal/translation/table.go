package translation

import (
	"log/slog"
	"strconv"

	"github.com/x4tools/shipqueue/internal/gamedata"
)

// DefaultLanguageID is the English t-file language page.
const DefaultLanguageID = 44

// LoadTable parses every t-file under the data root (base plus
// extensions) for the given language and returns the merged table.
// Malformed t-files are skipped with a log entry; they never abort the
// load.
func LoadTable(root string, languageID int, log *slog.Logger) Table {
	table := make(Table)
	for _, path := range gamedata.FindTranslationFiles(root) {
		doc, err := gamedata.LoadXML(path)
		if err != nil {
			log.Warn("skipping malformed t-file", "path", path, "error", err)
			continue
		}
		ingest(doc, languageID, table)
	}
	return table
}

// ingest merges one t-file document into the table. The document root is
// either a <language id=N> element itself or wraps one or more of them.
func ingest(doc *gamedata.Element, languageID int, table Table) {
	want := strconv.Itoa(languageID)

	var langs []*gamedata.Element
	if doc.Name == "language" && doc.Attr("id") == want {
		langs = append(langs, doc)
	} else {
		for _, lang := range doc.FindAll("language") {
			if lang.Attr("id") == want {
				langs = append(langs, lang)
			}
		}
	}

	for _, lang := range langs {
		for _, page := range lang.FindAll("page") {
			pid, err := strconv.Atoi(page.Attr("id"))
			if err != nil {
				continue
			}
			for _, entry := range page.FindAll("t") {
				tid, err := strconv.Atoi(entry.Attr("id"))
				if err != nil || entry.Text == "" {
					continue
				}
				table[Ref{Page: pid, ID: tid}] = CleanDisplayName(entry.Text)
			}
		}
	}
}
