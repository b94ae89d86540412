package browser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Table is a parsed two-dimensional HTML table.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ParseTable reads the first table in the given HTML fragment. Headers come
// from th cells, rows from tr elements carrying td cells. Cell text is
// trimmed of surrounding whitespace.
func ParseTable(html string) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	table := &Table{}
	root := doc.Find("table").First()
	root.Find("th").Each(func(_ int, th *goquery.Selection) {
		table.Headers = append(table.Headers, strings.TrimSpace(th.Text()))
	})
	root.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			row = append(row, strings.TrimSpace(td.Text()))
		})
		if len(row) > 0 {
			table.Rows = append(table.Rows, row)
		}
	})
	return table, nil
}

func (t *Table) column(header string) (int, error) {
	for i, h := range t.Headers {
		if h == header {
			return i, nil
		}
	}
	return 0, ErrColumnNotFound
}

// Cell returns the valueColumn cell of the row whose keyColumn cell equals
// key. Returns ErrRowNotFound when no row matches.
func (t *Table) Cell(keyColumn, key, valueColumn string) (string, error) {
	ki, err := t.column(keyColumn)
	if err != nil {
		return "", err
	}
	vi, err := t.column(valueColumn)
	if err != nil {
		return "", err
	}
	for _, row := range t.Rows {
		if ki < len(row) && row[ki] == key {
			if vi >= len(row) {
				return "", nil
			}
			return row[vi], nil
		}
	}
	return "", ErrRowNotFound
}

// Pairs maps every keyColumn cell to its valueColumn cell.
func (t *Table) Pairs(keyColumn, valueColumn string) (map[string]string, error) {
	ki, err := t.column(keyColumn)
	if err != nil {
		return nil, err
	}
	vi, err := t.column(valueColumn)
	if err != nil {
		return nil, err
	}
	pairs := make(map[string]string, len(t.Rows))
	for _, row := range t.Rows {
		if ki >= len(row) {
			continue
		}
		value := ""
		if vi < len(row) {
			value = row[vi]
		}
		pairs[row[ki]] = value
	}
	return pairs, nil
}
