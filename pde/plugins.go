// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pde

import (
	"fmt"
	"sync"

	"cogentcore.org/residual/base/ordmap"
)

// Plugin is called by an integrator after every accepted step.
// An error stops the integration.
type Plugin interface {
	Call(intg Integrator) error
}

// PluginFunc is a function that implements [Plugin].
type PluginFunc func(intg Integrator) error

func (pf PluginFunc) Call(intg Integrator) error { return pf(intg) }

// PluginDescriptor describes a registered plugin.
type PluginDescriptor struct {
	Name        string
	Description string
}

type plugin struct {
	desc PluginDescriptor
	pl   Plugin
}

// Plugins is an ordered registry of plugins, run in registration order.
type Plugins struct {
	mu      sync.RWMutex
	plugins *ordmap.Map[string, plugin]
}

// NewPlugins returns an empty registry.
func NewPlugins() *Plugins {
	return &Plugins{plugins: ordmap.New[string, plugin]()}
}

// Register adds a plugin under a unique name.
func (ps *Plugins) Register(desc PluginDescriptor, pl Plugin) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if desc.Name == "" {
		return fmt.Errorf("pde.Plugins: plugin name is empty")
	}
	if !ps.plugins.AddNew(desc.Name, plugin{desc: desc, pl: pl}) {
		return fmt.Errorf("pde.Plugins: plugin %q already registered", desc.Name)
	}
	return nil
}

// Unregister removes the named plugin, returning false if there is none.
func (ps *Plugins) Unregister(name string) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.plugins.DeleteKey(name)
}

// Descriptors returns the descriptors of all plugins in order.
func (ps *Plugins) Descriptors() []PluginDescriptor {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	ds := make([]PluginDescriptor, ps.plugins.Len())
	for i, kv := range ps.plugins.Order {
		ds[i] = kv.Value.desc
	}
	return ds
}

// Run calls every plugin in order, stopping at the first error.
func (ps *Plugins) Run(intg Integrator) error {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	for _, kv := range ps.plugins.Order {
		if err := kv.Value.pl.Call(intg); err != nil {
			return fmt.Errorf("plugin %s: %w", kv.Key, err)
		}
	}
	return nil
}
