package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mlp/internal/serialization"
)

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"version"}, &out))
	assert.Equal(t, "mlp "+version+"\n", out.String())
}

func TestRun_Unknown(t *testing.T) {
	var out bytes.Buffer
	require.Error(t, run([]string{"serve"}, &out))
	assert.Contains(t, out.String(), "Commands:")
}

func TestParseSizes(t *testing.T) {
	sizes, err := parseSizes("100, 30")
	require.NoError(t, err)
	assert.Equal(t, []int{100, 30}, sizes)

	sizes, err = parseSizes("")
	require.NoError(t, err)
	assert.Empty(t, sizes)

	_, err = parseSizes("30,0")
	require.Error(t, err)
	_, err = parseSizes("a")
	require.Error(t, err)
}

func TestParseTrainFlags_Invalid(t *testing.T) {
	var out bytes.Buffer
	for _, args := range [][]string{
		{"-batch", "0"},
		{"-lr", "0"},
		{"-epochs", "-1"},
		{"-test", "-5"},
		{"-nope"},
	} {
		_, err := parseTrainFlags(args, &out)
		assert.Error(t, err, "%v", args)
	}
}

func TestTrainEvalInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synthetic.mlpn")

	var out bytes.Buffer
	result, err := runTrain([]string{
		"-synthetic", "300",
		"-test", "100",
		"-epochs", "5",
		"-batch", "10",
		"-hidden", "16",
		"-seed", "7",
		"-workers", "2",
		"-out", path,
	}, &out)
	require.NoError(t, err, out.String())
	assert.Equal(t, 100, result.Total)
	assert.Contains(t, out.String(), "Running Epoch 5:")
	assert.Contains(t, out.String(), "Passes:")

	net, header, err := serialization.LoadFile(path, serialization.ReaderOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int{784, 16, 10}, net.Sizes())
	require.NotNil(t, header.Training)
	assert.Equal(t, 5, header.Training.Epoch)
	assert.Equal(t, "synthetic", header.Metadata["dataset"])
	assert.InDelta(t, result.Accuracy(), header.Training.Accuracy, 0)

	out.Reset()
	require.NoError(t, run([]string{"eval", "-synthetic", "50", "-in", path}, &out))
	assert.Contains(t, out.String(), "/ 50")

	out.Reset()
	require.NoError(t, run([]string{"inspect", path}, &out))
	assert.Contains(t, out.String(), "Sizes:      [784 16 10]")
	assert.Contains(t, out.String(), "Checksum:   OK")

	// Resume from the saved model.
	out.Reset()
	_, err = runTrain([]string{"-synthetic", "60", "-test", "20", "-epochs", "1", "-seed", "8", "-in", path}, &out)
	require.NoError(t, err, out.String())
	assert.Contains(t, out.String(), "[784 16 10]")
}

func TestTrain_TestSetTooLarge(t *testing.T) {
	var out bytes.Buffer
	_, err := runTrain([]string{"-synthetic", "20", "-test", "20", "-epochs", "1"}, &out)
	require.Error(t, err)
}

func TestEval_RequiresModel(t *testing.T) {
	var out bytes.Buffer
	require.Error(t, run([]string{"eval", "-synthetic", "10"}, &out))
}
