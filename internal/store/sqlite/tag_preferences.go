package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/baejw0111/review-server/internal/domain"
	"github.com/baejw0111/review-server/internal/store"
)

// tagPreferenceColumns is the ordered list of columns selected in tag
// preference queries. Must match the scan order in scanTagPreference.
const tagPreferenceColumns = `user_id, tag_name, korean_initials, preference, last_interacted_at`

// scanTagPreference scans a sql.Row (or sql.Rows via its Scan method) into
// a domain.TagPreference.
func scanTagPreference(scanner interface{ Scan(dest ...any) error }) (*domain.TagPreference, error) {
	var p domain.TagPreference

	var lastInteractedAt string

	err := scanner.Scan(
		&p.UserID,
		&p.TagName,
		&p.KoreanInitials,
		&p.Preference,
		&lastInteractedAt,
	)
	if err != nil {
		return nil, err
	}

	p.LastInteractedAt, err = parseTime(lastInteractedAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// UpsertTagPreference adds delta to one (user, tag) preference score,
// creating the row if absent. Each call is a single atomic statement;
// callers applying a batch of tags issue one call per tag, so one failure
// does not undo the others.
func (s *Store) UpsertTagPreference(ctx context.Context, userID, tagName, koreanInitials string, delta int, interactedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tag_preferences (user_id, tag_name, korean_initials, preference, last_interacted_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, tag_name) DO UPDATE SET
			preference = preference + excluded.preference,
			korean_initials = excluded.korean_initials,
			last_interacted_at = excluded.last_interacted_at`,
		userID,
		tagName,
		koreanInitials,
		delta,
		formatTime(interactedAt),
	)
	return err
}

// DeleteNonPositiveTagPreferences removes a user's rows whose score has
// dropped to zero or below. Safe to call repeatedly; returns the number of
// rows removed.
func (s *Store) DeleteNonPositiveTagPreferences(ctx context.Context, userID string) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tag_preferences WHERE user_id = ? AND preference <= 0`,
		userID)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// GetTagPreference retrieves one (user, tag) preference row.
// Returns store.ErrNotFound if no row exists.
func (s *Store) GetTagPreference(ctx context.Context, userID, tagName string) (*domain.TagPreference, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagPreferenceColumns+` FROM tag_preferences
		 WHERE user_id = ? AND tag_name = ?`,
		userID, tagName)

	pref, err := scanTagPreference(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return pref, nil
}

// TopTagsByUser returns the user's highest-scored tags, ties broken by
// most recent interaction.
func (s *Store) TopTagsByUser(ctx context.Context, userID string, limit int) ([]*domain.TagPreference, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagPreferenceColumns+` FROM tag_preferences
		 WHERE user_id = ?
		 ORDER BY preference DESC, last_interacted_at DESC
		 LIMIT ?`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prefs []*domain.TagPreference
	for rows.Next() {
		pref, err := scanTagPreference(rows)
		if err != nil {
			return nil, err
		}
		prefs = append(prefs, pref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prefs, nil
}

// PopularTags counts tags across the distinct set of reviews liked since
// the given time. A review liked by many users still contributes each of
// its tags once.
func (s *Store) PopularTags(ctx context.Context, since time.Time, limit int) ([]*domain.PopularTag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rt.tag_name, COUNT(*) AS cnt
		FROM review_tags rt
		WHERE rt.review_id IN (
			SELECT DISTINCT review_id FROM likes WHERE liked_at >= ?
		)
		GROUP BY rt.tag_name
		ORDER BY cnt DESC, rt.tag_name ASC
		LIMIT ?`,
		formatTime(since), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.PopularTag
	for rows.Next() {
		var t domain.PopularTag
		if err := rows.Scan(&t.TagName, &t.Count); err != nil {
			return nil, err
		}
		tags = append(tags, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search
// input. Queries using the result must carry ESCAPE '\'.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// SearchTagNames returns distinct tag names whose lowercased name contains
// any of terms, or whose cached choseong skeleton contains any of
// initials. Results are ranked by total preference weight across users.
func (s *Store) SearchTagNames(ctx context.Context, terms []string, initials []string, limit int) ([]string, error) {
	var (
		conds []string
		args  []any
	)
	for _, term := range terms {
		conds = append(conds, `LOWER(tag_name) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(term))+"%")
	}
	for _, ini := range initials {
		conds = append(conds, `korean_initials LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(ini)+"%")
	}
	if len(conds) == 0 {
		return nil, nil
	}

	args = append(args, limit)
	rows, err := s.db.QueryContext(ctx, `
		SELECT tag_name
		FROM tag_preferences
		WHERE `+strings.Join(conds, " OR ")+`
		GROUP BY tag_name
		ORDER BY SUM(preference) DESC, tag_name ASC
		LIMIT ?`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
