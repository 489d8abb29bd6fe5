package proofout_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xPolygon/zero-coordinator/log"
	"github.com/0xPolygon/zero-coordinator/proofout"
	"github.com/0xPolygon/zero-coordinator/proofout/mocks"
	"github.com/0xPolygon/zero-coordinator/prover"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testProofs() []prover.Proof {
	return []prover.Proof{
		{BlockNumber: 10, Intern: json.RawMessage(`{"digest":"0x01"}`)},
		{BlockNumber: 11, Intern: json.RawMessage(`{"digest":"0x02"}`)},
	}
}

func TestValidateRunName(t *testing.T) {
	for _, name := range []string{"default", "bench-1", "run_2.a", "A"} {
		require.NoError(t, proofout.ValidateRunName(name), name)
	}
	for _, name := range []string{"", ".", "..", "../x", "a/b", ".hidden", "with space"} {
		require.ErrorIs(t, proofout.ValidateRunName(name), proofout.ErrInvalidRunName, name)
	}
}

func TestNewWithoutDestination(t *testing.T) {
	_, err := proofout.New(log.GetDefaultLogger(), proofout.Config{}, nil)
	require.ErrorIs(t, err, proofout.ErrNoDestination)

	_, err = proofout.New(log.GetDefaultLogger(), proofout.Config{Bucket: "proofs"}, nil)
	require.ErrorIs(t, err, proofout.ErrNoDestination)
}

func TestWriteProofsToDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proofs")
	w, err := proofout.New(log.GetDefaultLogger(), proofout.Config{Dir: dir}, nil)
	require.NoError(t, err)

	require.NoError(t, w.WriteProofs(context.Background(), "bench", testProofs()))

	for _, p := range testProofs() {
		data, err := os.ReadFile(filepath.Join(dir, "bench", fmt.Sprintf("%d.json", p.BlockNumber)))
		require.NoError(t, err)

		var got prover.Proof
		require.NoError(t, json.Unmarshal(data, &got))
		require.Equal(t, p.BlockNumber, got.BlockNumber)
		require.JSONEq(t, string(p.Intern), string(got.Intern))
	}

	require.ErrorIs(t, w.WriteProofs(context.Background(), "../escape", testProofs()), proofout.ErrInvalidRunName)
}

func TestWriteInputsToDir(t *testing.T) {
	dir := t.TempDir()
	w, err := proofout.New(log.GetDefaultLogger(), proofout.Config{Dir: dir}, nil)
	require.NoError(t, err)

	input := prover.BlockProverInput{BlockTrace: json.RawMessage(`{}`)}
	input.OtherData.BData.BMeta.BlockNumber = (*hexutil.Big)(hexutil.MustDecodeBig("0x2a"))

	require.NoError(t, w.WriteInputs(context.Background(), "failed-run", []prover.BlockProverInput{input}))

	_, err = os.Stat(filepath.Join(dir, "failed-run", "inputs", "42.json"))
	require.NoError(t, err)
}

func TestWriteProofsToBucket(t *testing.T) {
	uploader := mocks.NewUploader(t)
	w, err := proofout.New(log.GetDefaultLogger(), proofout.Config{Bucket: "proofs", Dir: "ignored"}, uploader)
	require.NoError(t, err)

	uploader.EXPECT().Upload(mock.Anything, "proofs", "bench/10.json", mock.Anything, "application/json").Return(nil).Once()
	uploader.EXPECT().Upload(mock.Anything, "proofs", "bench/11.json", mock.Anything, "application/json").Return(nil).Once()

	require.NoError(t, w.WriteProofs(context.Background(), "bench", testProofs()))
}

func TestWriteProofsUploadError(t *testing.T) {
	uploader := mocks.NewUploader(t)
	w, err := proofout.New(log.GetDefaultLogger(), proofout.Config{Bucket: "proofs"}, uploader)
	require.NoError(t, err)

	errUpload := errors.New("denied")
	uploader.EXPECT().Upload(mock.Anything, "proofs", "bench/10.json", mock.Anything, "application/json").Return(errUpload).Once()

	err = w.WriteProofs(context.Background(), "bench", testProofs())
	require.ErrorIs(t, err, errUpload)
}
