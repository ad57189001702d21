package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestServe(t *testing.T) {
	in := strings.NewReader(`{"image":"street.jpg"}` + "\n" + `{"image":"broken.jpg"}` + "\n")
	var out bytes.Buffer

	require.NoError(t, Serve(context.Background(), fakeLoader{model: &fakeModel{}}, in, &out))

	dec := json.NewDecoder(&out)
	var resp response

	require.NoError(t, dec.Decode(&resp))
	require.True(t, resp.Ready)

	resp = response{}
	require.NoError(t, dec.Decode(&resp))
	require.Empty(t, resp.Error)
	require.Len(t, resp.Detections, 3)
	require.Equal(t, 2, resp.Detections[2].Class)

	resp = response{}
	require.NoError(t, dec.Decode(&resp))
	require.Contains(t, resp.Error, "broken.jpg")
}

func TestServe_LoadError(t *testing.T) {
	var out bytes.Buffer

	err := Serve(context.Background(), fakeLoader{err: errors.New("corrupt")}, strings.NewReader(""), &out)
	require.Error(t, err)
	require.Zero(t, out.Len())
}
