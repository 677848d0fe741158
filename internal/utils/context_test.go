// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-rest-pipeline/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestIdentityCtxKey(t *testing.T) {
	if IdentityCtxKey.String() != "identity" {
		t.Errorf("expected 'identity', got '%s'", IdentityCtxKey.String())
	}
}

func TestGetIdentityFromContext_Success(t *testing.T) {
	ctx := WithIdentity(context.Background(), models.KeyIdentity("svcA"))

	id, ok := GetIdentityFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if id != "KEY/svcA" {
		t.Errorf("expected KEY/svcA, got %s", id)
	}
}

func TestGetIdentityFromContext_Missing(t *testing.T) {
	id, ok := GetIdentityFromContext(context.Background())
	if ok {
		t.Error("expected ok=false for missing identity")
	}
	if id != "" {
		t.Errorf("expected empty identity, got %s", id)
	}
}

func TestGetIdentityFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), IdentityCtxKey, "KEY/svcA")

	if _, ok := GetIdentityFromContext(ctx); ok {
		t.Error("expected ok=false for plain string value")
	}
}

func TestCaptures(t *testing.T) {
	c := Captures{Positional: []string{"/api/v2/users/42", "42"}, Named: map[string]string{"id": "42"}}
	ctx := WithCaptures(context.Background(), c)

	got, ok := GetCapturesFromContext(ctx)
	if !ok {
		t.Fatal("expected captures in context")
	}
	if got.Named["id"] != "42" || got.Positional[1] != "42" {
		t.Errorf("unexpected captures: %+v", got)
	}

	if _, ok := GetCapturesFromContext(context.Background()); ok {
		t.Error("expected no captures in empty context")
	}
}

func TestRequestContext(t *testing.T) {
	req := &models.Request{Method: "GET"}
	got, ok := GetRequestFromContext(WithRequest(context.Background(), req))
	if !ok || got != req {
		t.Fatal("expected stored request")
	}

	if _, ok := GetRequestFromContext(WithRequest(context.Background(), nil)); ok {
		t.Error("expected ok=false for nil request")
	}
}
