// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Each model has ToDomain and FromDomain mappers; repositories only read and
// write models. Tables:
//   - clubs, club_configs
//   - users
//   - members, campaigns, contributions, expenses, incomes, debts, debt_payments
//   - audit_logs
package models
