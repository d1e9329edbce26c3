// Package report parses the tab-separated trade report exported from the
// trading platform into trade records for analysis.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"ylos-analyzer/internal/analysis"
)

// timeLayout is the report's date format: dd/mm/yyyy HH:MM.
const timeLayout = "02/01/2006 15:04"

// column holds the canonical header name plus accepted spellings (exports
// differ on diacritics).
type column struct {
	name     string
	aliases  []string
	required bool
}

var columns = []column{
	{name: "Ativo", required: true},
	{name: "Abertura", required: true},
	{name: "Fechamento", required: true},
	{name: "Tempo Operação", aliases: []string{"Tempo Operacao"}},
	{name: "Qtd Compra"},
	{name: "Qtd Venda"},
	{name: "Lado"},
	{name: "Preço Compra", aliases: []string{"Preco Compra"}},
	{name: "Preço Venda", aliases: []string{"Preco Venda"}},
	{name: "Preço de Mercado", aliases: []string{"Preco de Mercado"}},
	{name: "Médio", aliases: []string{"Medio"}, required: true},
	{name: "Res. Intervalo"},
	{name: "Res. Intervalo (%)"},
	{name: "Res. Operação", aliases: []string{"Res. Operacao"}, required: true},
	{name: "Res. Operação (%)", aliases: []string{"Res. Operacao (%)"}},
	{name: "TET"},
	{name: "Total"},
}

// Parse reads a tab-separated trade report and returns its trade records.
// Malformed headers, dates, or numbers are input errors.
func Parse(r io.Reader) ([]analysis.TradeRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("report is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var trades []analysis.TradeRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if isBlank(row) {
			continue
		}

		tr, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		trades = append(trades, tr)
	}

	return trades, nil
}

func mapHeader(header []string) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[strings.TrimSpace(h)] = i
	}

	index := make(map[string]int, len(columns))
	for _, col := range columns {
		if i, ok := byName[col.name]; ok {
			index[col.name] = i
			continue
		}
		found := false
		for _, alias := range col.aliases {
			if i, ok := byName[alias]; ok {
				index[col.name] = i
				found = true
				break
			}
		}
		if !found {
			if col.required {
				return nil, fmt.Errorf("missing required column %q", col.name)
			}
			index[col.name] = -1
		}
	}
	return index, nil
}

func parseRow(row []string, index map[string]int) (analysis.TradeRecord, error) {
	get := func(name string) string {
		i := index[name]
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	openedAt, err := time.Parse(timeLayout, get("Abertura"))
	if err != nil {
		return analysis.TradeRecord{}, fmt.Errorf("open timestamp: %w", err)
	}
	closedAt, err := time.Parse(timeLayout, get("Fechamento"))
	if err != nil {
		return analysis.TradeRecord{}, fmt.Errorf("close timestamp: %w", err)
	}

	netResult, err := parseMoney(get("Res. Operação"))
	if err != nil {
		return analysis.TradeRecord{}, fmt.Errorf("net result: %w", err)
	}

	tr := analysis.TradeRecord{
		Symbol:        get("Ativo"),
		OpenedAt:      openedAt,
		ClosedAt:      closedAt,
		Duration:      get("Tempo Operação"),
		Side:          get("Lado"),
		UsedAveraging: parseYesNo(get("Médio")),
		NetResult:     netResult,
	}

	// Optional numeric columns: blank cells are fine, garbage is not.
	tr.BuyQty, err = parseOptionalInt(get("Qtd Compra"))
	if err != nil {
		return analysis.TradeRecord{}, fmt.Errorf("buy qty: %w", err)
	}
	tr.SellQty, err = parseOptionalInt(get("Qtd Venda"))
	if err != nil {
		return analysis.TradeRecord{}, fmt.Errorf("sell qty: %w", err)
	}
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"Preço Compra", &tr.BuyPrice},
		{"Preço Venda", &tr.SellPrice},
		{"Preço de Mercado", &tr.MarketPrice},
		{"Res. Intervalo", &tr.IntervalResult},
		{"Res. Intervalo (%)", &tr.IntervalResultPct},
		{"Res. Operação (%)", &tr.NetResultPct},
		{"Total", &tr.Total},
	} {
		v, err := parseOptionalMoney(get(f.name))
		if err != nil {
			return analysis.TradeRecord{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}

	return tr, nil
}

// parseMoney handles Brazilian number formatting: "." thousands separator and
// "," decimal separator, with a fallback for plain dot decimals.
func parseMoney(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return strconv.ParseFloat(s, 64)
}

func parseOptionalMoney(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return parseMoney(s)
}

func parseOptionalInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseYesNo(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sim", "yes", "true":
		return true
	}
	return false
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
