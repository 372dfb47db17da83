// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package admin

import (
	"fmt"
	"net/http"

	"github.com/gorilla/rpc/v2"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/Soccial/soccial-token-sub000/utils/json"
	"github.com/Soccial/soccial-token-sub000/utils/profiler"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/api"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
)

const (
	ServiceName = "admin"
	Endpoint    = "/ext/" + ServiceName
)

// Authorizer decides whether an authenticated caller may administer the node.
type Authorizer interface {
	AuthorizeAdmin(caller ids.ShortID) error
}

type EmptyReply struct{}

// Admin is the API service for node admin management
type Admin struct {
	log      log.Logger
	auth     Authorizer
	profiler *profiler.Profiler
}

// NewService returns a new admin API service writing profiles to profileDir.
// Every method requires a caller authenticated by authenticator and accepted
// by auth.
func NewService(
	logger log.Logger,
	profileDir string,
	authenticator *api.Authenticator,
	auth Authorizer,
) (http.Handler, error) {
	server := rpc.NewServer()
	codec := json.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	err := server.RegisterService(
		&Admin{
			log:      logger,
			auth:     auth,
			profiler: profiler.New(profileDir),
		},
		ServiceName,
	)
	if err != nil {
		return nil, err
	}
	return authenticator.Wrap(server), nil
}

func (a *Admin) authorize(r *http.Request, method string) error {
	a.log.Debug("API called",
		log.String("service", ServiceName),
		log.String("method", method),
	)

	caller, err := api.Caller(r)
	if err != nil {
		err = fmt.Errorf("%w: %w", errs.ErrUnauthorized, err)
	} else {
		err = a.auth.AuthorizeAdmin(caller)
	}
	if err != nil {
		a.log.Warn("rejected admin call",
			log.String("method", method),
			log.Err(err),
		)
		return api.RPCError(err)
	}
	return nil
}

// StartCPUProfiler starts a cpu profile writing to the profile directory
func (a *Admin) StartCPUProfiler(r *http.Request, _ *struct{}, _ *EmptyReply) error {
	if err := a.authorize(r, "startCPUProfiler"); err != nil {
		return err
	}
	return a.profiler.StartCPUProfiler()
}

// StopCPUProfiler stops the cpu profile
func (a *Admin) StopCPUProfiler(r *http.Request, _ *struct{}, _ *EmptyReply) error {
	if err := a.authorize(r, "stopCPUProfiler"); err != nil {
		return err
	}
	return a.profiler.StopCPUProfiler()
}

// MemoryProfile writes a heap profile
func (a *Admin) MemoryProfile(r *http.Request, _ *struct{}, _ *EmptyReply) error {
	if err := a.authorize(r, "memoryProfile"); err != nil {
		return err
	}
	return a.profiler.MemoryProfile()
}

// LockProfile writes a mutex profile
func (a *Admin) LockProfile(r *http.Request, _ *struct{}, _ *EmptyReply) error {
	if err := a.authorize(r, "lockProfile"); err != nil {
		return err
	}
	return a.profiler.LockProfile()
}

// Stacktrace writes the current global stacktrace
func (a *Admin) Stacktrace(r *http.Request, _ *struct{}, _ *EmptyReply) error {
	if err := a.authorize(r, "stacktrace"); err != nil {
		return err
	}
	return a.profiler.Stacktrace()
}
