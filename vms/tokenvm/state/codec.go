// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"errors"
	"math"

	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/access"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/fee"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/governance"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/staking"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vesting"
)

const CodecVersion uint16 = 0

var Codec codec.Manager

func init() {
	Codec = codec.NewManager(math.MaxInt32)
	lc := linearcodec.NewDefault()

	err := errors.Join(
		lc.RegisterType(&access.Settings{}),
		lc.RegisterType(&access.UserAccess{}),
		lc.RegisterType(&fee.Config{}),
		lc.RegisterType(&staking.Plan{}),
		lc.RegisterType(&staking.Stake{}),
		lc.RegisterType(&vesting.Schedule{}),
		lc.RegisterType(&governance.Params{}),
		lc.RegisterType(&governance.Proposal{}),
		lc.RegisterType(&governance.Vote{}),
		Codec.RegisterCodec(CodecVersion, lc),
	)
	if err != nil {
		panic(err)
	}
}
