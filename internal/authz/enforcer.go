// Trick or Treat - Neighborhood Treat Provider Directory
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trickortreat

package authz

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"

	"github.com/tomtom215/trickortreat/internal/config"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Roles
const (
	RoleMember   = "member"
	RoleProvider = "provider"
)

// Request is one authorization question.
type Request struct {
	// Object is the request path.
	Object string
	// Action is the HTTP method.
	Action string
	// Subject is the caller's user id.
	Subject string
	// Owner is the user id named by the route, or "".
	Owner string
	// Roles held by the caller.
	Roles []string
}

// Enforcer wraps the Casbin enforcer.
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer loads the model and policy. Empty or missing paths fall back
// to the embedded defaults.
func NewEnforcer(cfg *config.CasbinConfig) (*Enforcer, error) {
	if cfg == nil {
		cfg = &config.CasbinConfig{}
	}

	var m model.Model
	var err error

	if cfg.ModelPath != "" && fileExists(cfg.ModelPath) {
		m, err = model.NewModelFromFile(cfg.ModelPath)
	} else {
		m, err = model.NewModelFromString(embeddedModel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	var enforcer *casbin.SyncedEnforcer
	if cfg.PolicyPath != "" && fileExists(cfg.PolicyPath) {
		enforcer, err = casbin.NewSyncedEnforcer(m, fileadapter.NewAdapter(cfg.PolicyPath))
	} else {
		enforcer, err = casbin.NewSyncedEnforcer(m)
		if err == nil {
			err = loadPolicy(enforcer, embeddedPolicy)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	return &Enforcer{enforcer: enforcer}, nil
}

// loadPolicy parses policy CSV lines into the enforcer.
func loadPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			return fmt.Errorf("malformed policy line %q", line)
		}
		rule := make([]interface{}, 0, len(parts)-1)
		for _, part := range parts[1:] {
			rule = append(rule, strings.TrimSpace(part))
		}

		var err error
		switch strings.TrimSpace(parts[0]) {
		case "p":
			_, err = enforcer.AddPolicy(rule...)
		case "g":
			_, err = enforcer.AddGroupingPolicy(rule...)
		default:
			err = fmt.Errorf("unknown policy type %q", parts[0])
		}
		if err != nil {
			return fmt.Errorf("failed to add policy %q: %w", line, err)
		}
	}
	return nil
}

// Enforce reports whether any of the caller's roles allows the request.
func (e *Enforcer) Enforce(req Request) (bool, error) {
	for _, role := range req.Roles {
		allowed, err := e.enforcer.Enforce(role, req.Object, req.Action, req.Subject, req.Owner)
		if err != nil {
			return false, fmt.Errorf("enforcement failed: %w", err)
		}
		if allowed {
			return true, nil
		}
	}
	return false, nil
}

// GetPolicy returns all policy rules.
func (e *Enforcer) GetPolicy() [][]string {
	//nolint:errcheck // GetPolicy only fails if enforcer is nil, which is a programming error
	policies, _ := e.enforcer.GetPolicy()
	return policies
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
