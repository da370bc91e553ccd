package dict

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/servolink-protocol/servolink-go/pkg/reg"
)

// rootElement is the expected document root.
const rootElement = "ServolinkDictionary"

// XML document shape. Presence-sensitive attributes are pointers so an
// absent attribute can be told apart from an empty one.
type xmlDocument struct {
	XMLName    xml.Name      `xml:""`
	Categories []xmlCategory `xml:"Categories>Category"`
	Registers  []xmlRegister `xml:"Registers>Register"`
}

type xmlCategory struct {
	ID            *string          `xml:"id,attr"`
	Labels        []xmlLabel       `xml:"Labels>Label"`
	Subcategories []xmlSubcategory `xml:"Subcategories>Subcategory"`
}

type xmlSubcategory struct {
	ID     *string    `xml:"id,attr"`
	Labels []xmlLabel `xml:"Labels>Label"`
}

type xmlRegister struct {
	ID      *string    `xml:"id,attr"`
	Address *string    `xml:"address,attr"`
	DType   *string    `xml:"dtype,attr"`
	Access  *string    `xml:"access,attr"`
	Phy     *string    `xml:"phy,attr"`
	CatID   *string    `xml:"cat_id,attr"`
	ScatID  *string    `xml:"scat_id,attr"`
	Value   *string    `xml:"value,attr"`
	Range   *xmlRange  `xml:"Range"`
	Labels  []xmlLabel `xml:"Labels>Label"`
}

type xmlRange struct {
	Min *string `xml:"min,attr"`
	Max *string `xml:"max,attr"`
}

type xmlLabel struct {
	Lang *string `xml:"lang,attr"`
	Text string  `xml:",chardata"`
}

// Parse builds a dictionary from an XML document. Parsing is all or
// nothing: the first structural error aborts and nothing is returned.
func Parse(data []byte) (*Dictionary, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	if doc.XMLName.Local != rootElement {
		return nil, fmt.Errorf("%w: root element %q, want %q",
			ErrUnsupportedFormat, doc.XMLName.Local, rootElement)
	}

	d := &Dictionary{
		cats: make(map[string]*category),
		regs: make(map[string]*reg.Register),
	}

	for _, xc := range doc.Categories {
		if xc.ID == nil {
			return nil, fmt.Errorf("%w: category without id", ErrMalformedEntry)
		}
		if _, exists := d.cats[*xc.ID]; exists {
			return nil, fmt.Errorf("%w: category %q", ErrDuplicateID, *xc.ID)
		}
		labels, err := parseLabels(xc.Labels)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", *xc.ID, err)
		}
		c := &category{labels: labels, scats: make(map[string]Labels)}
		for _, xs := range xc.Subcategories {
			if xs.ID == nil {
				return nil, fmt.Errorf("%w: subcategory without id in %q",
					ErrMalformedEntry, *xc.ID)
			}
			if _, exists := c.scats[*xs.ID]; exists {
				return nil, fmt.Errorf("%w: subcategory %q in %q",
					ErrDuplicateID, *xs.ID, *xc.ID)
			}
			slabels, err := parseLabels(xs.Labels)
			if err != nil {
				return nil, fmt.Errorf("subcategory %q: %w", *xs.ID, err)
			}
			c.scats[*xs.ID] = slabels
		}
		d.cats[*xc.ID] = c
	}

	for _, xr := range doc.Registers {
		r, err := parseRegister(xr)
		if err != nil {
			return nil, err
		}
		if _, exists := d.regs[r.ID]; exists {
			return nil, fmt.Errorf("%w: register %q", ErrDuplicateID, r.ID)
		}
		d.regs[r.ID] = r
	}

	return d, nil
}

func parseRegister(xr xmlRegister) (*reg.Register, error) {
	if xr.ID == nil {
		return nil, fmt.Errorf("%w: register without id", ErrMalformedEntry)
	}
	id := *xr.ID
	if xr.Address == nil || xr.DType == nil || xr.Access == nil {
		return nil, fmt.Errorf("%w: register %q misses a required attribute",
			ErrMalformedEntry, id)
	}

	// Addresses are hex with an optional 0x prefix, as produced by both
	// hand-written and exported dictionaries.
	hexAddr := strings.TrimPrefix(strings.TrimPrefix(*xr.Address, "0x"), "0X")
	addr, err := strconv.ParseUint(hexAddr, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: register %q address %q",
			ErrMalformedEntry, id, *xr.Address)
	}
	dtype, err := reg.ParseDType(*xr.DType)
	if err != nil {
		return nil, fmt.Errorf("register %q: %w", id, err)
	}
	access, err := reg.ParseAccess(*xr.Access)
	if err != nil {
		return nil, fmt.Errorf("register %q: %w", id, err)
	}

	r := &reg.Register{
		ID:      id,
		Address: uint32(addr),
		DType:   dtype,
		Access:  access,
		Range:   reg.DefaultRange(dtype),
	}

	if xr.Phy != nil {
		r.Phy = reg.ParsePhy(*xr.Phy)
	}
	if xr.ScatID != nil && xr.CatID == nil {
		return nil, fmt.Errorf("%w: register %q has scat_id without cat_id",
			ErrMalformedEntry, id)
	}
	if xr.CatID != nil {
		r.CatID = *xr.CatID
	}
	if xr.ScatID != nil {
		r.ScatID = *xr.ScatID
	}

	if xr.Value != nil {
		v, err := reg.ParseValue(dtype, *xr.Value)
		if err != nil {
			return nil, fmt.Errorf("register %q default: %w", id, err)
		}
		r.Default = v
	}

	if xr.Range != nil {
		if xr.Range.Min != nil {
			v, err := reg.ParseValue(dtype, *xr.Range.Min)
			if err != nil {
				return nil, fmt.Errorf("register %q range min: %w", id, err)
			}
			r.Range.Min = v
		}
		if xr.Range.Max != nil {
			v, err := reg.ParseValue(dtype, *xr.Range.Max)
			if err != nil {
				return nil, fmt.Errorf("register %q range max: %w", id, err)
			}
			r.Range.Max = v
		}
	}

	labels, err := parseLabels(xr.Labels)
	if err != nil {
		return nil, fmt.Errorf("register %q: %w", id, err)
	}
	r.Labels = labels

	return r, nil
}

func parseLabels(xls []xmlLabel) (Labels, error) {
	labels := make(Labels, len(xls))
	for _, xl := range xls {
		if xl.Lang == nil {
			return nil, fmt.Errorf("%w: label without lang", ErrMalformedEntry)
		}
		labels[*xl.Lang] = xl.Text
	}
	return labels, nil
}
