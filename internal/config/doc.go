// Package config provides configuration structures and utilities for cribdrag.
// It defines the session fixture, word-list selection, history and report
// preferences, and how they are loaded from a YAML file and the environment.
package config
