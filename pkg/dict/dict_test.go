package dict

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servolink-protocol/servolink-go/pkg/reg"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<ServolinkDictionary>
  <Categories>
    <Category id="MOTION">
      <Labels>
        <Label lang="en">Motion</Label>
        <Label lang="de">Bewegung</Label>
      </Labels>
      <Subcategories>
        <Subcategory id="PID">
          <Labels><Label lang="en">PID loops</Label></Labels>
        </Subcategory>
        <Subcategory id="LIMITS">
          <Labels><Label lang="en">Limits</Label></Labels>
        </Subcategory>
      </Subcategories>
    </Category>
    <Category id="IDENT">
      <Labels><Label lang="en">Identification</Label></Labels>
    </Category>
  </Categories>
  <Registers>
    <Register id="VEL_TGT" address="2041" dtype="s32" access="rw"
              phy="vel" cat_id="MOTION" scat_id="PID">
      <Range min="-2000000" max="2000000"/>
      <Labels><Label lang="en">Velocity target</Label></Labels>
    </Register>
    <Register id="STS_WORD" address="6041" dtype="u16" access="r"/>
    <Register id="SW_VER" address="100A" dtype="str" access="r" cat_id="IDENT"/>
    <Register id="CTL_WORD" address="6040" dtype="u16" access="rw" value="6"/>
  </Registers>
</ServolinkDictionary>`

func TestParseSample(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, 2, d.CategoryCount())
	assert.Equal(t, 2, d.SubcategoryCount("MOTION"))
	assert.Equal(t, 0, d.SubcategoryCount("IDENT"))
	assert.Equal(t, 4, d.RegisterCount())

	assert.Equal(t, []string{"IDENT", "MOTION"}, d.CategoryIDs())
	scats, err := d.SubcategoryIDs("MOTION")
	require.NoError(t, err)
	assert.Equal(t, []string{"LIMITS", "PID"}, scats)
	assert.Equal(t, []string{"CTL_WORD", "STS_WORD", "SW_VER", "VEL_TGT"}, d.RegisterIDs())
}

func TestParseRegisterAttributes(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	r, err := d.Register("VEL_TGT")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x2041), r.Address)
	assert.Equal(t, reg.DTypeS32, r.DType)
	assert.Equal(t, reg.AccessRW, r.Access)
	assert.Equal(t, reg.PhyVel, r.Phy)
	assert.Equal(t, "MOTION", r.CatID)
	assert.Equal(t, "PID", r.ScatID)
	assert.Equal(t, int32(-2000000), r.Range.Min)
	assert.Equal(t, int32(2000000), r.Range.Max)

	label, ok := r.Label("en")
	assert.True(t, ok)
	assert.Equal(t, "Velocity target", label)
	_, ok = r.Label("fr")
	assert.False(t, ok)
}

func TestParseRegisterDefaults(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	// No phy attribute maps to none, no Range keeps the full dtype range.
	r, err := d.Register("STS_WORD")
	require.NoError(t, err)
	assert.Equal(t, reg.PhyNone, r.Phy)
	assert.Equal(t, uint16(0), r.Range.Min)
	assert.Equal(t, uint16(0xFFFF), r.Range.Max)
	assert.Nil(t, r.Default)

	r, err = d.Register("CTL_WORD")
	require.NoError(t, err)
	assert.Equal(t, uint16(6), r.Default)
}

func TestParsePrefixedAddress(t *testing.T) {
	doc := `<ServolinkDictionary><Registers>
		<Register id="CTL" address="0x6040" dtype="u16" access="rw"/>
		<Register id="STS" address="0X6041" dtype="u16" access="r"/>
	</Registers></ServolinkDictionary>`
	d, err := Parse([]byte(doc))
	require.NoError(t, err)

	r, err := d.Register("CTL")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x6040), r.Address)

	r, err = d.Register("STS")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x6041), r.Address)
}

func TestParseUnknownPhyMapsToNone(t *testing.T) {
	doc := `<ServolinkDictionary><Registers>
		<Register id="R" address="1000" dtype="u8" access="r" phy="parsec"/>
	</Registers></ServolinkDictionary>`
	d, err := Parse([]byte(doc))
	require.NoError(t, err)
	r, err := d.Register("R")
	require.NoError(t, err)
	assert.Equal(t, reg.PhyNone, r.Phy)
}

func TestParseWrongRootElement(t *testing.T) {
	_, err := Parse([]byte(`<SomethingElse/>`))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseNotXML(t *testing.T) {
	_, err := Parse([]byte(`{"registers": []}`))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseDuplicateRegisterID(t *testing.T) {
	doc := `<ServolinkDictionary><Registers>
		<Register id="R" address="1000" dtype="u8" access="r"/>
		<Register id="R" address="1001" dtype="u8" access="r"/>
	</Registers></ServolinkDictionary>`
	d, err := Parse([]byte(doc))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Nil(t, d)
}

func TestParseDuplicateCategoryID(t *testing.T) {
	doc := `<ServolinkDictionary><Categories>
		<Category id="C"/>
		<Category id="C"/>
	</Categories></ServolinkDictionary>`
	_, err := Parse([]byte(doc))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestParseDuplicateSubcategoryID(t *testing.T) {
	doc := `<ServolinkDictionary><Categories>
		<Category id="C"><Subcategories>
			<Subcategory id="S"/>
			<Subcategory id="S"/>
		</Subcategories></Category>
	</Categories></ServolinkDictionary>`
	_, err := Parse([]byte(doc))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestParseMalformedEntries(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{
			"register without id",
			`<ServolinkDictionary><Registers>
				<Register address="1000" dtype="u8" access="r"/>
			</Registers></ServolinkDictionary>`,
		},
		{
			"register without address",
			`<ServolinkDictionary><Registers>
				<Register id="R" dtype="u8" access="r"/>
			</Registers></ServolinkDictionary>`,
		},
		{
			"register with bad address",
			`<ServolinkDictionary><Registers>
				<Register id="R" address="xyz" dtype="u8" access="r"/>
			</Registers></ServolinkDictionary>`,
		},
		{
			"scat_id without cat_id",
			`<ServolinkDictionary><Registers>
				<Register id="R" address="1000" dtype="u8" access="r" scat_id="S"/>
			</Registers></ServolinkDictionary>`,
		},
		{
			"label without lang",
			`<ServolinkDictionary><Registers>
				<Register id="R" address="1000" dtype="u8" access="r">
					<Labels><Label>No language</Label></Labels>
				</Register>
			</Registers></ServolinkDictionary>`,
		},
		{
			"category without id",
			`<ServolinkDictionary><Categories>
				<Category/>
			</Categories></ServolinkDictionary>`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			assert.ErrorIs(t, err, ErrMalformedEntry)
		})
	}
}

func TestParseUnknownDType(t *testing.T) {
	doc := `<ServolinkDictionary><Registers>
		<Register id="R" address="1000" dtype="i128" access="r"/>
	</Registers></ServolinkDictionary>`
	_, err := Parse([]byte(doc))
	assert.ErrorIs(t, err, reg.ErrInvalidDType)
}

func TestParseBadRangeBound(t *testing.T) {
	doc := `<ServolinkDictionary><Registers>
		<Register id="R" address="1000" dtype="u8" access="r">
			<Range min="many"/>
		</Register>
	</Registers></ServolinkDictionary>`
	_, err := Parse([]byte(doc))
	assert.ErrorIs(t, err, reg.ErrValueType)
}

func TestLookupNotFound(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	_, err = d.Register("NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = d.Category("NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = d.Subcategory("MOTION", "NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = d.Subcategory("NOPE", "PID")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = d.SubcategoryIDs("NOPE")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drive.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, d.RegisterCount())

	_, err = Load(filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}

func TestCategoryLabels(t *testing.T) {
	d, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	labels, err := d.Category("MOTION")
	require.NoError(t, err)
	assert.Equal(t, Labels{"en": "Motion", "de": "Bewegung"}, labels)

	labels, err = d.Subcategory("MOTION", "PID")
	require.NoError(t, err)
	assert.Equal(t, "PID loops", labels["en"])
}
