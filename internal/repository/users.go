package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/AndrivA89/question-forge/internal/domain"
	"github.com/AndrivA89/question-forge/internal/platform/neo4jdb"
)

// EnsureUser creates the user on first sight and returns the email. Calling
// it again never duplicates the node nor touches created_at.
func (r *CurriculumRepository) EnsureUser(ctx context.Context, email string) (string, error) {
	if err := checkEmail(email); err != nil {
		return "", r.fail("ensure user", err)
	}
	out, err := neo4jdb.RunWrite(ctx, r.client, func(tx neo4j.ManagedTransaction) (string, error) {
		return r.ensureUserTx(ctx, tx, email)
	})
	if err != nil {
		return "", r.fail("ensure user", err)
	}
	return out, nil
}

// ensureUserTx runs inside the caller's transaction so that user creation
// commits or rolls back together with the entity that needs the owner.
func (r *CurriculumRepository) ensureUserTx(ctx context.Context, tx neo4j.ManagedTransaction, email string) (string, error) {
	if err := checkEmail(email); err != nil {
		return "", err
	}
	email = strings.TrimSpace(email)
	res, err := tx.Run(ctx, `
		MERGE (u:User {email: $email})
		ON CREATE SET u.created_at = $now
		RETURN u.email AS email
	`, map[string]any{
		"email": email,
		"now":   r.timestamp(),
	})
	if err != nil {
		return "", err
	}
	record, err := res.Single(ctx)
	if err != nil {
		return "", err
	}
	return recordString(record, "email"), nil
}

func checkEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: user email is empty", domain.ErrInvalidInput)
	}
	return nil
}
