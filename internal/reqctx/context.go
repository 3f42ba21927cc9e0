package reqctx

import "context"

type ctxKey string

const (
	keyRID       ctxKey = "teamchat_rid"
	keyProfileID ctxKey = "teamchat_profile_id"
)

// WithRID stores the request correlation id used in logs.
func WithRID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, keyRID, rid)
}

// RID returns correlation id if present.
func RID(ctx context.Context) string {
	v, _ := ctx.Value(keyRID).(string)
	return v
}

// WithProfileID stores the acting profile resolved by the identity middleware.
func WithProfileID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyProfileID, id)
}

// ProfileID returns the acting profile id, or "" when the caller is anonymous.
func ProfileID(ctx context.Context) string {
	v, _ := ctx.Value(keyProfileID).(string)
	return v
}
