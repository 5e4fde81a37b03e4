// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/lms-gateway/internal/config"
	"github.com/MKhiriev/lms-gateway/internal/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisConfig(addr string) config.Redis {
	return config.Redis{
		Addr:         addr,
		DialTimeout:  200 * time.Millisecond,
		ReadTimeout:  200 * time.Millisecond,
		WriteTimeout: 200 * time.Millisecond,
	}
}

func TestNewStorages_UnreachableStoreIsNotFatal(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	s, err := NewStorages(context.Background(), redisConfig(addr), false, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Error(t, s.Counter.Ping(context.Background()))
	assert.NoError(t, s.Close())
}

func TestNewStorages_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := NewStorages(context.Background(), redisConfig(mr.Addr()), true, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	wc, err := s.Counter.IncrementWindow(context.Background(), "k", time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), wc.Count)
}

func TestNewStorages_UnreachableStoreWhenRequired(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	s, err := NewStorages(context.Background(), redisConfig(addr), true, logger.Nop())

	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestNewStorages_StartupPingIsBounded(t *testing.T) {
	// a listener that accepts connections but never answers
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()

	cfg := redisConfig(ln.Addr().String())
	cfg.ReadTimeout = time.Minute
	cfg.WriteTimeout = time.Minute

	start := time.Now()
	s, err := NewStorages(context.Background(), cfg, true, logger.Nop())

	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Less(t, time.Since(start), 5*time.Second)
}
