// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package mockable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClockSetAndAdvance(t *testing.T) {
	require := require.New(t)

	var clk Clock
	start := time.Unix(1_700_000_000, 0)
	clk.Set(start)
	require.Equal(start, clk.Time())
	require.Equal(uint64(1_700_000_000), clk.Unix())

	clk.Advance(90 * time.Second)
	require.Equal(uint64(1_700_000_090), clk.Unix())
}

func TestClockSync(t *testing.T) {
	require := require.New(t)

	var clk Clock
	clk.Set(time.Unix(0, 0))
	require.Zero(clk.Unix())

	clk.Sync()
	require.WithinDuration(time.Now(), clk.Time(), time.Minute)
}

func TestClockBeforeEpoch(t *testing.T) {
	var clk Clock
	clk.Set(time.Unix(-10, 0))
	require.Zero(t, clk.Unix())
}
