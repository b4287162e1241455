package catalog

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CSV header names, matched case-insensitively.
const (
	ColumnName    = "Product Name"
	ColumnType    = "Type"
	ColumnPrice   = "Price per Sq Ft"
	ColumnInstall = "Installation Cost per Sq Ft"
)

type record struct {
	Name    string           `json:"name" yaml:"name"`
	Type    string           `json:"type" yaml:"type"`
	Price   *decimal.Decimal `json:"price_per_sq_ft" yaml:"price_per_sq_ft"`
	Install *decimal.Decimal `json:"installation_cost_per_sq_ft" yaml:"installation_cost_per_sq_ft"`
}

// Load reads a product table from path. The format follows the extension:
// .csv, .json, .yaml or .yml.
func Load(path string) ([]Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open catalog")
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	var products []Product
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		products, err = ReadCSV(f)
	case ".json":
		products, err = ReadJSON(f)
	case ".yaml", ".yml":
		products, err = ReadYAML(f)
	default:
		return nil, errors.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return products, nil
}

func ReadCSV(r io.Reader) ([]Product, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("missing header row")
		}
		return nil, errors.Wrap(err, "read header")
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cols := make([]int, 0, 4)
	for _, name := range []string{ColumnName, ColumnType, ColumnPrice, ColumnInstall} {
		i, ok := idx[strings.ToLower(name)]
		if !ok {
			return nil, errors.Errorf("missing column %q", name)
		}
		cols = append(cols, i)
	}

	var out []Product
	for row := 2; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", row)
		}
		get := func(i int) string {
			if cols[i] >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[cols[i]])
		}
		p, err := productFromStrings(get(0), get(1), get(2), get(3))
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", row)
		}
		out = append(out, p)
	}
	return out, nil
}

func ReadJSON(r io.Reader) ([]Product, error) {
	var recs []record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, errors.Wrap(err, "decode json")
	}
	return fromRecords(recs)
}

func ReadYAML(r io.Reader) ([]Product, error) {
	var recs []record
	if err := yaml.NewDecoder(r).Decode(&recs); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(err, "decode yaml")
	}
	return fromRecords(recs)
}

func fromRecords(recs []record) ([]Product, error) {
	out := make([]Product, 0, len(recs))
	for i, rec := range recs {
		p := Product{
			Name:     strings.TrimSpace(rec.Name),
			Category: strings.TrimSpace(rec.Type),
		}
		if rec.Price == nil || rec.Install == nil {
			return nil, errors.Errorf("item %d: missing price", i+1)
		}
		p.PricePerArea, p.InstallCostPerArea = *rec.Price, *rec.Install
		if err := validate(p); err != nil {
			return nil, errors.Wrapf(err, "item %d", i+1)
		}
		out = append(out, p)
	}
	return out, nil
}

func productFromStrings(name, category, price, install string) (Product, error) {
	p := Product{Name: name, Category: category}
	var err error
	if p.PricePerArea, err = parseMoney(ColumnPrice, price); err != nil {
		return Product{}, err
	}
	if p.InstallCostPerArea, err = parseMoney(ColumnInstall, install); err != nil {
		return Product{}, err
	}
	return p, validate(p)
}

func parseMoney(column, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, errors.Errorf("empty %q", column)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "parse %q", column)
	}
	return d, nil
}

func validate(p Product) error {
	switch {
	case p.Name == "":
		return errors.New("empty product name")
	case p.Category == "":
		return errors.Errorf("product %q: empty type", p.Name)
	case p.PricePerArea.IsNegative():
		return errors.Errorf("product %q: negative price", p.Name)
	case p.InstallCostPerArea.IsNegative():
		return errors.Errorf("product %q: negative installation cost", p.Name)
	}
	return nil
}
