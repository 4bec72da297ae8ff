package mapper_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"objmap/field"
	"objmap/mapper"
)

type profile struct {
	Score            int    `map:"normalised_score"`
	NormalisedScores []int  `map:"normalised_scores"`
	Name             string `map:"name"`
	Email            string `map:"email"`
}

// The native attribute is called normalised_score but the mapped output
// should just say score.
func TestSerializeFromSource(t *testing.T) {
	m := mapper.New(
		field.NewInteger("score", field.Source("normalised_score")),
	)

	result, err := m.Serialize(profile{Score: 5})
	require.NoError(t, err)

	if diff := cmp.Diff(map[string]any{"score": 5}, result); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestMarshalToSource(t *testing.T) {
	m := mapper.New(
		field.NewInteger("score", field.Source("normalised_score")),
	)

	obj := &profile{}
	_, err := m.Marshal(map[string]any{"score": 5}, obj)
	require.NoError(t, err)
	assert.Equal(t, 5, obj.Score)
}

func TestSerializeFromSourceCollection(t *testing.T) {
	m := mapper.New(
		field.NewCollection("scores", field.NewInteger(""), field.Source("normalised_scores")),
	)

	result, err := m.Serialize(profile{NormalisedScores: []int{1, 2, 3}})
	require.NoError(t, err)

	if diff := cmp.Diff(map[string]any{"scores": []any{1, 2, 3}}, result); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestMarshalToSourceCollection(t *testing.T) {
	m := mapper.New(
		field.NewCollection("scores", field.NewInteger(""), field.Source("normalised_scores")),
	)

	obj := &profile{}
	_, err := m.Marshal(map[string]any{"scores": []any{1, 2, 3}}, obj)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, obj.NormalisedScores)
}

// Without a custom source the mapped name addresses the object too.
func TestSerializeFromName(t *testing.T) {
	type scoreObj struct {
		Score int `map:"score"`
	}

	m := mapper.New(field.NewInteger("score"))

	result, err := m.Serialize(scoreObj{Score: 5})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"score": 5}, result)
}

func TestMarshalToName(t *testing.T) {
	type scoreObj struct {
		Score int `map:"score"`
	}

	m := mapper.New(field.NewInteger("score"))

	obj := &scoreObj{}
	_, err := m.Marshal(map[string]any{"score": 5}, obj)
	require.NoError(t, err)
	assert.Equal(t, 5, obj.Score)
}

func TestMarshalCollectsInvalidFields(t *testing.T) {
	m := mapper.New(
		field.NewInteger("score", field.Required()),
		field.NewString("name", field.Required()),
		field.NewString("email"),
	)

	_, err := m.Marshal(map[string]any{"email": "mike@mike.com"}, &profile{})
	var inv *mapper.MappingInvalid
	require.ErrorAs(t, err, &inv)
	assert.Len(t, inv.Errors, 2)
	assert.Contains(t, inv.Errors, "score")
	assert.Contains(t, inv.Errors, "name")
	assert.Contains(t, err.Error(), "field required")
}

func TestMarshalContractErrorAborts(t *testing.T) {
	m := mapper.New(field.NewInteger("score"))

	_, err := m.Marshal(map[string]any{"score": 5}, 42)
	var fe *field.FieldError
	require.ErrorAs(t, err, &fe)
}

func TestMarshalReportsChanges(t *testing.T) {
	m := mapper.New(field.NewInteger("score", field.Source("normalised_score")))

	output := map[string]any{"normalised_score": 2}
	changes, err := m.Marshal(map[string]any{"score": 3}, output)
	require.NoError(t, err)
	assert.Equal(t, 2, changes["score"].Old)
	assert.Equal(t, 3, changes["score"].New)
}

func TestRoles(t *testing.T) {
	m := mapper.New(
		field.NewInteger("score"),
		field.NewString("name"),
		field.NewString("email"),
	).
		AddRole("public", mapper.Whitelist("score", "name")).
		AddRole("no_email", mapper.Blacklist("email"))

	obj := map[string]any{"score": 5, "name": "mike", "email": "mike@mike.com"}

	result, err := m.SerializeRole("public", obj)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"score": 5, "name": "mike"}, result)

	result, err = m.SerializeRole("no_email", obj)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"score": 5, "name": "mike"}, result)

	_, err = m.SerializeRole("missing", obj)
	assert.Error(t, err)
}

func TestMarshalRole(t *testing.T) {
	m := mapper.New(
		field.NewInteger("score", field.Source("normalised_score")),
		field.NewString("name"),
	).AddRole("scores_only", mapper.Whitelist("score"))

	obj := &profile{}
	_, err := m.MarshalRole("scores_only", map[string]any{"score": 7, "name": "mike"}, obj)
	require.NoError(t, err)
	assert.Equal(t, 7, obj.Score)
	assert.Empty(t, obj.Name)
}

// Serializing an object and marshalling the result back must land on
// the original native values.
func TestRoundTrip(t *testing.T) {
	m := mapper.New(
		field.NewInteger("score", field.Source("normalised_score"), field.Min(0), field.Max(100)),
		field.NewString("name"),
		field.NewCollection("scores", field.NewInteger(""), field.Source("normalised_scores")),
	)

	original := profile{
		Score:            42,
		Name:             "mike",
		NormalisedScores: []int{1, 2, 3},
	}

	mapped, err := m.Serialize(original)
	require.NoError(t, err)

	restored := &profile{}
	_, err = m.Marshal(mapped, restored)
	require.NoError(t, err)

	if diff := cmp.Diff(original, *restored); diff != "" {
		t.Errorf("round trip drifted (-want +got):\n%s", diff)
	}
}
