package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapGatewayStatus(t *testing.T) {
	// Total over the gateway vocabulary and anything else.
	cases := map[string]Status{
		"COMPLETE":  StatusAuthorized,
		"PENDING":   StatusPending,
		"CANCELED":  StatusCanceled,
		"AMBIGUOUS": StatusPending,
		"NOT_FOUND": StatusCanceled,

		"FULL_REFUND": StatusError,
		"GARBAGE":     StatusError,
		"":            StatusError,
		"complete":    StatusError,
	}

	for input, want := range cases {
		t.Run("maps "+input, func(t *testing.T) {
			assert.Equal(t, want, MapGatewayStatus(input))
		})
	}
}

func TestSession_MergeData(t *testing.T) {
	t.Run("StampsMarker", func(t *testing.T) {
		s := &Session{TransactionID: "T1"}
		s.MergeData("authorize", map[string]interface{}{"ref_id": "0001AB"})

		assert.Equal(t, "0001AB", s.Data["ref_id"])
		assert.Equal(t, "authorize", s.LastOperation())
	})

	t.Run("LaterMergeOverwrites", func(t *testing.T) {
		s := &Session{TransactionID: "T1"}
		s.MergeData("initiate", map[string]interface{}{"total_amount": "100"})
		s.MergeData("retrieve", map[string]interface{}{"total_amount": "100", "status": "COMPLETE"})

		assert.Equal(t, "retrieve", s.LastOperation())
		assert.Equal(t, "COMPLETE", s.Data["status"])
	})

	t.Run("EmptySession", func(t *testing.T) {
		s := &Session{}
		assert.Equal(t, "", s.LastOperation())
		s.MergeData("initiate", nil)
		assert.Equal(t, "initiate", s.LastOperation())
	})
}
