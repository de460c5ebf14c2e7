// Package main provides the entry point for the todo API service.
// It runs a JSON REST API built on the Fiber framework with per-user
// todo ownership and role-based access control. Authentication uses
// stateless signed bearer tokens; persistence is handled by gorm.
package main
