package blacklist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	"github.com/snap-point/social-api/models"
	"github.com/snap-point/social-api/testutil"
)

func TestGormBlacklist(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "alice", "password123", false)
	ctx := context.Background()

	token := models.RefreshToken{
		UserID:         user.ID,
		JTI:            "jti-1",
		Token:          "signed",
		ExpirationDate: time.Now().Add(time.Hour),
	}
	if err := db.Create(&token).Error; err != nil {
		t.Fatal(err)
	}

	bl := NewGormBlacklist(db)

	if got, err := bl.IsBlacklisted(ctx, "jti-1"); err != nil || got {
		t.Fatalf("IsBlacklisted() = %v, %v before blacklisting", got, err)
	}
	if err := bl.Blacklist(ctx, "jti-1", token.ExpirationDate); err != nil {
		t.Fatalf("Blacklist() error = %v", err)
	}
	if got, err := bl.IsBlacklisted(ctx, "jti-1"); err != nil || !got {
		t.Fatalf("IsBlacklisted() = %v, %v after blacklisting", got, err)
	}
	if err := bl.Blacklist(ctx, "jti-1", token.ExpirationDate); !errors.Is(err, ErrBlacklisted) {
		t.Errorf("second Blacklist() error = %v, want ErrBlacklisted", err)
	}
	if err := bl.Blacklist(ctx, "unknown", token.ExpirationDate); !errors.Is(err, ErrNotOutstanding) {
		t.Errorf("Blacklist(unknown) error = %v, want ErrNotOutstanding", err)
	}
	if _, err := bl.IsBlacklisted(ctx, "unknown"); !errors.Is(err, ErrNotOutstanding) {
		t.Errorf("IsBlacklisted(unknown) error = %v, want ErrNotOutstanding", err)
	}
}

func TestRedisBlacklist(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := NewRedisClient(ctx, mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("NewRedisClient() error = %v", err)
	}
	defer client.Close()

	bl := NewRedisBlacklist(client)
	expires := time.Now().Add(time.Hour)

	if got, _ := bl.IsBlacklisted(ctx, "jti-1"); got {
		t.Fatal("token blacklisted before Blacklist()")
	}
	if err := bl.Blacklist(ctx, "jti-1", expires); err != nil {
		t.Fatalf("Blacklist() error = %v", err)
	}
	if got, err := bl.IsBlacklisted(ctx, "jti-1"); err != nil || !got {
		t.Fatalf("IsBlacklisted() = %v, %v", got, err)
	}
	if err := bl.Blacklist(ctx, "jti-1", expires); !errors.Is(err, ErrBlacklisted) {
		t.Errorf("second Blacklist() error = %v, want ErrBlacklisted", err)
	}

	raw, err := mr.Get(keyPrefix + "jti-1")
	if err != nil {
		t.Fatalf("stored entry missing: %v", err)
	}
	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil || entry.JTI != "jti-1" || !entry.ExpiresAt.Equal(expires.UTC()) {
		t.Fatalf("stored entry = %+v, %v", entry, err)
	}

	if ttl := mr.TTL(keyPrefix + "jti-1"); ttl <= 0 || ttl > time.Hour {
		t.Errorf("ttl = %v, want within (0, 1h]", ttl)
	}

	mr.FastForward(2 * time.Hour)
	if got, _ := bl.IsBlacklisted(ctx, "jti-1"); got {
		t.Error("entry should expire with the token")
	}
}

func TestRedisBlacklistIgnoresExpiredTokens(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	bl := NewRedisBlacklist(client)
	if err := bl.Blacklist(context.Background(), "old", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("Blacklist() error = %v", err)
	}
	if len(mr.Keys()) != 0 {
		t.Errorf("keys = %v, want none", mr.Keys())
	}
}

func TestNewRedisClientFailsWithoutServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := NewRedisClient(ctx, "127.0.0.1:1", "", 0); err == nil {
		t.Fatal("expected ping error")
	}
}
