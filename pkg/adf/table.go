package adf

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/unal-mcp/sia-mcp/pkg/sia"
)

// ParseTable converts a rendered table fragment into ordered rows.
//
// Header discovery, in order: an explicit <thead>, then a header-like first
// row (<th> cells, or <td> cells when the table has no <th> at all). When a
// header cell is empty the column is keyed positionally as col_N. Data rows
// whose cells are all empty text are discarded. The same logical ADF table
// renders with headers, without headers, or empty depending on the filters,
// so every one of these shapes must produce usable rows.
func ParseTable(fragment string) []*sia.TableRow {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil
	}

	var headers []string
	table.Find("thead").First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(cell.Text()))
	})

	rows := table.Find("tr").Not("thead tr")

	headerFromFirstRow := false
	if len(headers) == 0 && rows.Length() > 0 {
		first := rows.First()
		cells := first.Find("th")
		if cells.Length() == 0 {
			cells = first.Find("td")
		}
		cells.Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(cell.Text()))
		})
		headerFromFirstRow = len(headers) > 0
	}

	var out []*sia.TableRow
	rows.Each(func(i int, tr *goquery.Selection) {
		if headerFromFirstRow && i == 0 {
			return
		}
		row := sia.NewTableRow()
		tr.Find("td").Each(func(j int, cell *goquery.Selection) {
			key := "col_" + strconv.Itoa(j)
			if j < len(headers) && headers[j] != "" {
				key = headers[j]
			}
			row.Append(key, strings.TrimSpace(cell.Text()))
		})
		if row.Len() > 0 && !row.Empty() {
			out = append(out, row)
		}
	})
	return out
}

// headerTexts collects a table's header cells, normalized for fuzzy
// classification (lowercased, diacritics stripped).
func headerTexts(table *goquery.Selection) []string {
	var headers []string
	table.Find("thead").First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, Normalize(strings.TrimSpace(cell.Text())))
	})
	if len(headers) == 0 {
		table.Find("tr").First().Find("th").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, Normalize(strings.TrimSpace(cell.Text())))
		})
	}
	return headers
}

// rowCells collects the trimmed td texts of a row.
func rowCells(tr *goquery.Selection) []string {
	var cells []string
	tr.Find("td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(cell.Text()))
	})
	return cells
}

// dataRows returns a table's data rows: every non-thead row, minus the first
// row when the header had to be read from it (no explicit thead).
func dataRows(table *goquery.Selection) *goquery.Selection {
	rows := table.Find("tr").Not("thead tr")
	if table.Find("thead").First().Find("th, td").Length() > 0 {
		return rows
	}
	if rows.Length() > 0 && rows.First().Find("th").Length() > 0 {
		return rows.Slice(1, goquery.ToEnd)
	}
	return rows
}
