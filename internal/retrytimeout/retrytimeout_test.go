// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package retrytimeout

import (
	"errors"
	"testing"
	"time"
)

func TestRetryTimeoutSucceedsImmediately(t *testing.T) {
	calls := 0

	err := RetryTimeout(time.Second, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatal("RetryTimeout:", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetryTimeoutRetriesUntilSuccess(t *testing.T) {
	calls := 0

	err := RetryTimeout(5*time.Second, func() error {
		calls++
		if calls < 3 {
			return errors.New("not ready")
		}
		return nil
	})
	if err != nil {
		t.Fatal("RetryTimeout:", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetryTimeoutWrapsLastError(t *testing.T) {
	barrier := errors.New("still not ready")

	err := RetryTimeout(10*time.Millisecond, func() error {
		return barrier
	})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, barrier) {
		t.Errorf("expected last error to be wrapped, got %v", err)
	}
}
