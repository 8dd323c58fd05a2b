// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The Husk Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package retrytimeout

import (
	"fmt"
	"time"
)

// DefaultInterval is the pause between two attempts.
const DefaultInterval = 100 * time.Millisecond

// RetryTimeout repeatedly invokes fn until it succeeds or the given timeout
// elapses, in which case the last error returned by fn is wrapped and
// returned.
func RetryTimeout(timeout time.Duration, fn func() error) error {
	deadline := time.Now().Add(timeout)

	var err error
	for {
		if err = fn(); err == nil {
			return nil
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("timed out after %s: %w", timeout, err)
		}

		time.Sleep(DefaultInterval)
	}
}
