// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package health asks a backend's standard gRPC health service whether it is
// serving.
package health

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
)

// Target describes the health endpoint.
type Target struct {
	// Addr is host[:port]. Without a port, 443 is assumed.
	Addr string
	// Insecure disables TLS (local development).
	Insecure bool
	// Service is the health service name; "" asks about the whole server.
	Service string
	// Token, when set, is sent as bearer authorization metadata.
	Token string
}

// Result is the answer of one probe.
type Result struct {
	Target  string
	Status  string
	Latency time.Duration
}

// Serving reports whether the backend declared itself healthy.
func (r Result) Serving() bool {
	return r.Status == healthpb.HealthCheckResponse_SERVING.String()
}

// Probe performs a single health check bounded by ctx.
func Probe(ctx context.Context, t Target) (Result, error) {
	host := t.Addr
	if h, _, err := net.SplitHostPort(t.Addr); err == nil {
		host = h
	}
	target := t.Addr
	if _, _, err := net.SplitHostPort(t.Addr); err != nil {
		target = net.JoinHostPort(t.Addr, "443")
	}

	creds := insecure.NewCredentials()
	if !t.Insecure {
		creds = credentials.NewTLS(&tls.Config{ServerName: host, MinVersion: tls.VersionTLS12})
	}
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(creds))
	if err != nil {
		return Result{Target: target}, fmt.Errorf("health: dial %s: %w", target, err)
	}
	defer conn.Close()

	if t.Token != "" {
		ctx = metadata.NewOutgoingContext(ctx, metadata.Pairs("authorization", "Bearer "+t.Token))
	}

	started := time.Now()
	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: t.Service})
	res := Result{Target: target, Latency: time.Since(started)}
	if err != nil {
		return res, fmt.Errorf("health: check %s: %w", target, err)
	}
	res.Status = resp.GetStatus().String()
	return res, nil
}
