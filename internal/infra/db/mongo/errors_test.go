package mongo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// TestIsWriteConflict verifies that a reservation race inside concurrent
// transactions is classified as a lost race rather than a storage fault,
// whether the server reports the WriteConflict code or only the transient
// transaction label.
func TestIsWriteConflict(t *testing.T) {
	byCode := mongo.CommandError{Code: writeConflictCode, Name: "WriteConflict"}
	require.True(t, isWriteConflict(byCode))

	byLabel := mongo.CommandError{Code: 251, Name: "NoSuchTransaction", Labels: []string{"TransientTransactionError"}}
	require.True(t, isWriteConflict(byLabel))

	wrapped := fmt.Errorf("reserve night: %w", byCode)
	require.True(t, isWriteConflict(wrapped))

	require.False(t, isWriteConflict(errors.New("connection reset")))
	require.False(t, isWriteConflict(mongo.CommandError{Code: 11000, Name: "DuplicateKey"}))
	require.False(t, isWriteConflict(nil))
}
