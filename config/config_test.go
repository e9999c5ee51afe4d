package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"go.dedis.ch/tbls/v2/config"
)

func TestLoadValid(t *testing.T) {
	doc := `
curve: C381
session:
  n: 5
  threshold: 3
  session_id: round-1
`
	c, err := config.Load(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, config.C381, c.Curve)
	require.Equal(t, 5, c.Session.N)
	require.Equal(t, 3, c.Session.Threshold)
	require.Equal(t, "round-1", c.Session.SessionID)

	suite, err := c.Curve.Suite()
	require.NoError(t, err)
	require.Equal(t, "C381", suite.Name())
}

func TestLoadUnknownCurve(t *testing.T) {
	doc := `
curve: C999
session:
  n: 5
  threshold: 3
  session_id: round-1
`
	_, err := config.Load(strings.NewReader(doc))
	require.Error(t, err)
}

func TestLoadThresholdOutOfRange(t *testing.T) {
	doc := `
curve: C377
session:
  n: 3
  threshold: 4
  session_id: round-1
`
	_, err := config.Load(strings.NewReader(doc))
	require.Error(t, err)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	doc := `
curve: C377
session:
  n: 3
  threshold: 2
  session_id: round-1
extra_field: surprise
`
	_, err := config.Load(strings.NewReader(doc))
	require.Error(t, err)
}

func TestLoadMissingSessionID(t *testing.T) {
	doc := `
curve: C377
session:
  n: 3
  threshold: 2
  session_id: ""
`
	_, err := config.Load(strings.NewReader(doc))
	require.Error(t, err)
}
