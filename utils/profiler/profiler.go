// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package profiler writes CPU, memory, lock and goroutine profiles of the
// running process into a directory.
package profiler

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
)

const (
	CPUProfileFile  = "cpu.profile"
	MemProfileFile  = "mem.profile"
	LockProfileFile = "lock.profile"
	StacktraceFile  = "stacktrace.txt"

	dirPerms  = 0o750
	filePerms = 0o600
)

var (
	errCPUProfilerRunning    = errors.New("cpu profiler already running")
	errCPUProfilerNotRunning = errors.New("cpu profiler doesn't exist")
	errNoMutexProfile        = errors.New("mutex profile not found")
)

// Profiler is safe for concurrent use. Only one CPU profile can run per
// process.
type Profiler struct {
	dir string

	lock       sync.Mutex
	cpuProfile *os.File
}

func New(dir string) *Profiler {
	return &Profiler{dir: dir}
}

// Dir is where profiles are written.
func (p *Profiler) Dir() string {
	return p.dir
}

func (p *Profiler) StartCPUProfiler() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.cpuProfile != nil {
		return errCPUProfilerRunning
	}
	file, err := p.create(CPUProfileFile)
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(file); err != nil {
		return errors.Join(err, file.Close())
	}
	p.cpuProfile = file
	return nil
}

func (p *Profiler) StopCPUProfiler() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.cpuProfile == nil {
		return errCPUProfilerNotRunning
	}
	pprof.StopCPUProfile()
	err := p.cpuProfile.Close()
	p.cpuProfile = nil
	return err
}

func (p *Profiler) MemoryProfile() error {
	runtime.GC()
	return p.write(MemProfileFile, func(file *os.File) error {
		return pprof.WriteHeapProfile(file)
	})
}

func (p *Profiler) LockProfile() error {
	profile := pprof.Lookup("mutex")
	if profile == nil {
		return errNoMutexProfile
	}
	return p.write(LockProfileFile, func(file *os.File) error {
		return profile.WriteTo(file, 0)
	})
}

// Stacktrace writes the stacks of every goroutine.
func (p *Profiler) Stacktrace() error {
	return p.write(StacktraceFile, func(file *os.File) error {
		_, err := file.Write(stacks())
		return err
	})
}

func (p *Profiler) write(name string, fn func(*os.File) error) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	file, err := p.create(name)
	if err != nil {
		return err
	}
	return errors.Join(fn(file), file.Close())
}

func (p *Profiler) create(name string) (*os.File, error) {
	if err := os.MkdirAll(p.dir, dirPerms); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(p.dir, name), os.O_RDWR|os.O_CREATE|os.O_TRUNC, filePerms)
}

func stacks() []byte {
	buf := make([]byte, 1<<16)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			return buf[:n]
		}
		buf = make([]byte, 2*len(buf))
	}
}
