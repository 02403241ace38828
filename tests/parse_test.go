package tests_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rockstar/posy"
)

// TestParse_PublicSurface exercises the façade the way a consumer would:
// raw text in, document and core-metadata view out.
func TestParse_PublicSurface(t *testing.T) {
	raw := "Metadata-Version: 2.1\n" +
		"Name: sampleproject\n" +
		"Version: 3.0.0\n" +
		"Classifier: Programming Language :: Python :: 3\n" +
		"Classifier: License :: OSI Approved :: MIT License\n" +
		"\n" +
		"# sampleproject\n\nA sample project.\n"

	doc, err := posy.Parse(raw)
	require.NoError(t, err)

	name, ok := doc.Fields.First("Name")
	require.True(t, ok)
	assert.Equal(t, "sampleproject", name)

	assert.Equal(t,
		[]string{
			"Programming Language :: Python :: 3",
			"License :: OSI Approved :: MIT License",
		},
		doc.Fields.All("Classifier"),
		"duplicate fields must accumulate in order")

	require.NotNil(t, doc.Body)
	assert.Equal(t, "# sampleproject\n\nA sample project.\n", *doc.Body)

	core := posy.NewCoreMetadata(doc)
	assert.Equal(t, []string{"# sampleproject\n\nA sample project.\n"},
		core.Fields.All("Description"),
		"body folds into Description")

	// The document itself stays as parsed.
	assert.Empty(t, doc.Fields.All("Description"))
}

func TestParse_RejectsBrokenInput(t *testing.T) {
	for _, input := range []string{
		"",
		"  continuation line\nat: beginning\n\nnot good\n",
		"bad key name: whee\n",
		": no key name\n",
	} {
		_, err := posy.Parse(input)
		require.Error(t, err, "input %q must be rejected", input)

		var perr *posy.ParseError
		require.ErrorAs(t, err, &perr)
		assert.NotEmpty(t, perr.Expected)
		assert.GreaterOrEqual(t, perr.Line, 1)
	}
}

func TestParseCoreMetadata_Facade(t *testing.T) {
	core, err := posy.ParseCoreMetadata("Name: pkg\n\nreadme\n")
	require.NoError(t, err)

	desc, ok := core.Fields.First("Description")
	require.True(t, ok)
	assert.Equal(t, "readme\n", desc)
}
