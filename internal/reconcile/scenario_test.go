package reconcile

import (
	"os"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/docfold/docfold/internal/doctree"
	"github.com/docfold/docfold/internal/plan"
	"github.com/docfold/docfold/internal/structhash"
)

// scenario is one fixture case: two serialized trees plus the expected
// aggregate statistics of the computed plan.
type scenario struct {
	Name     string     `yaml:"name"`
	Original string     `yaml:"original"`
	Executed string     `yaml:"executed"`
	Stats    plan.Stats `yaml:"stats"`
}

type scenarioFile struct {
	Scenarios []scenario `yaml:"scenarios"`
}

func TestScenarioFixtures(t *testing.T) {
	data, err := os.ReadFile("testdata/scenarios.yaml")
	require.NoError(t, err)

	var file scenarioFile
	require.NoError(t, yaml.Unmarshal(data, &file))
	require.NotEmpty(t, file.Scenarios)

	for _, sc := range file.Scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			original, err := doctree.UnmarshalDocument([]byte(sc.Original))
			require.NoError(t, err)
			executed, err := doctree.UnmarshalDocument([]byte(sc.Executed))
			require.NoError(t, err)

			merged, p := Reconcile(original, executed)

			assert.Equal(t, sc.Stats, p.Stats)
			assert.True(t, structhash.EqualDocument(merged, executed),
				"merged tree must be structurally identical to executed")
		})
	}
}

// The serialized plan format is consumed by external debug tooling; pin it
// with a golden file.
func TestPlanGolden(t *testing.T) {
	original := doc(
		p(doctree.SourceInfo(`{"offset":0,"line":1}`), "alpha"),
		p(doctree.SourceInfo(`{"offset":7,"line":3}`), "beta"),
	)
	executed := doc(p(nil, "beta"), p(nil, "alpha"))

	data, err := plan.Marshal(Compute(original, executed))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "plan_swap", data)
}
