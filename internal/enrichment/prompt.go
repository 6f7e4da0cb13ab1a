package enrichment

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"catalog-import/internal/domain"
)

// SystemPrompt is installed as the model's system instruction.
const SystemPrompt = "You are a pharmacy catalog data specialist. You turn raw spreadsheet rows into structured product records and link them to the reference lists you are given. You must output your response as a single valid JSON object."

const userPromptHeader = `Enrich each product row below.

Follow these rules precisely:
1.  Return a JSON object with one key "results" holding an array with exactly one object per input row.
2.  Every object must carry the "rowIndex" of the row it describes and a "confidence" number between 0 and 1.
3.  Optional keys, each may be null: "name", "description", "genericId", "genericName", "genericConfidence",
    "manufacturerId", "manufacturerName", "manufacturerConfidence", "categoryId", "categoryName",
    "categoryConfidence", "strength", "dosageForm", "packSize", "requiresPrescription".
4.  Pick "genericId", "manufacturerId" and "categoryId" only from the reference lists. Each list line is id|name|aliases.
    If nothing fits, leave the id null and put your best free-text guess in the matching name field.
5.  All confidence values must be numbers between 0 and 1.
6.  Do not include any text before or after the JSON object.
`

// Row is one draft handed to the model.
type Row struct {
	RowIndex int
	Data     domain.RawRow
}

type promptRow struct {
	RowIndex int               `json:"rowIndex"`
	Data     map[string]string `json:"data"`
}

// BuildPrompt renders the batch prompt: instructions, the three master lists, then one JSON line per row.
func BuildPrompt(rows []Row, masters domain.MasterLists) string {
	var sb strings.Builder
	sb.WriteString(userPromptHeader)

	for _, kind := range domain.MasterKinds {
		fmt.Fprintf(&sb, "\n### %s reference list\n", kind)
		for _, record := range masters.ByKind(kind) {
			sb.WriteString(masterLine(record))
			sb.WriteByte('\n')
		}
	}

	sb.WriteString("\n### Rows\n")
	for _, row := range rows {
		line, _ := json.Marshal(promptRow{RowIndex: row.RowIndex, Data: rowData(row.Data)})
		sb.Write(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// BuildCorrectivePrompt repeats the batch prompt with the validator's complaint about the previous answer.
func BuildCorrectivePrompt(rows []Row, masters domain.MasterLists, complaint string) string {
	var sb strings.Builder
	sb.WriteString(BuildPrompt(rows, masters))
	sb.WriteString("\n### Correction\nYour previous response was rejected by the schema validator: ")
	sb.WriteString(complaint)
	sb.WriteString("\nReturn the corrected JSON object only, covering every row listed above.\n")
	return sb.String()
}

func masterLine(record domain.MasterRecord) string {
	return sanitize(record.ID) + "|" + sanitize(record.Name) + "|" + strings.Join(sanitizeAll(record.Aliases), ";")
}

func rowData(row domain.RawRow) map[string]string {
	data := make(map[string]string, len(row.Columns)+1)
	for key, value := range row.Columns {
		if value = strings.TrimSpace(value); value != "" {
			data[key] = value
		}
	}
	data["name"] = row.Name
	return data
}

// sanitize keeps list lines single-line and unambiguous.
func sanitize(s string) string {
	return strings.NewReplacer("|", "/", ";", ",", "\n", " ", "\r", " ").Replace(strings.TrimSpace(s))
}

func sanitizeAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = sanitize(v); v != "" {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
