package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRequestDataRoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := WithRequestData(context.Background(), &RequestData{UserID: id})
	if got := UserID(ctx); got != id {
		t.Fatalf("UserID: want=%s got=%s", id, got)
	}
	if got := UserID(context.Background()); got != uuid.Nil {
		t.Fatalf("UserID anonymous: want nil got=%s", got)
	}
	if Default(nil) == nil {
		t.Fatalf("Default(nil): want background context")
	}
}
