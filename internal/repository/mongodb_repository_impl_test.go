package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/AatishKamble/swapify/pkg/errs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogTrxError(t *testing.T) {
	testCases := []struct {
		Name          string
		Err           error
		ExpectedLevel string
	}{
		{"invalid transition", fmt.Errorf("%w: DELIVERED to CANCELLED", errs.ErrInvalidTransition), "warn"},
		{"empty cart", errs.ErrEmptyCart, "warn"},
		{"product sold", errs.ErrProductSold, "warn"},
		{"driver failure", errors.New("connection pool closed"), "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := zerolog.New(&buf).WithContext(context.Background())

			logTrxError(ctx, tc.Err)

			var entry map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tc.ExpectedLevel, entry["level"])
			assert.Equal(t, "HandleTrx", entry["component"])
		})
	}
}
