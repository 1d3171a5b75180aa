package mongo

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

const writeConflictCode = 112

// isWriteConflict reports whether err means the transaction lost a race
// against a concurrent one. Inside multi-document transactions the server
// does not report ModifiedCount=0 for a document another open transaction
// already touched; it fails the statement with WriteConflict and labels the
// error transient. Both cases are a lost reservation race, not a storage
// fault.
func isWriteConflict(err error) bool {
	var srvErr mongo.ServerError
	if !errors.As(err, &srvErr) {
		return false
	}
	return srvErr.HasErrorCode(writeConflictCode) ||
		srvErr.HasErrorLabel("TransientTransactionError")
}
