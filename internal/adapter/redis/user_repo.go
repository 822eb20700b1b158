package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pscheid92/quizpulse/internal/domain"
)

const (
	userKeyPrefix = "quizpulse:user:"
	scanBatchSize = 100
)

// Hash fields of a player record.
const (
	fieldPoints         = "points"
	fieldTotalAnswers   = "total_answers"
	fieldCorrectAnswers = "correct_answers"
	fieldQuizzesStarted = "quizzes_started"
	fieldQuizzesStopped = "quizzes_stopped"
)

// UserRepository stores one Redis hash per player under quizpulse:user:<name>.
type UserRepository struct {
	client *Client
}

var _ domain.UserRepository = (*UserRepository)(nil)

func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{client: client}
}

// Load scans all player hashes and returns them keyed by player name.
func (r *UserRepository) Load(ctx context.Context) (map[string]*domain.UserRecord, error) {
	rdb := r.client.Underlying()
	records := make(map[string]*domain.UserRecord)

	iter := rdb.Scan(ctx, 0, userKeyPrefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		fields, err := rdb.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read player hash %s: %w", key, err)
		}
		if len(fields) == 0 {
			continue
		}

		name := strings.TrimPrefix(key, userKeyPrefix)
		records[name] = fieldsToRecord(name, fields)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan player hashes: %w", err)
	}

	return records, nil
}

// SaveAll writes every record in one pipeline.
func (r *UserRepository) SaveAll(ctx context.Context, records map[string]*domain.UserRecord) error {
	if len(records) == 0 {
		return nil
	}

	rdb := r.client.Underlying()
	pipe := rdb.Pipeline()
	for name, record := range records {
		pipe.HSet(ctx, userKeyPrefix+name, recordToFields(record))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to persist player records: %w", err)
	}
	return nil
}

func recordToFields(record *domain.UserRecord) map[string]any {
	return map[string]any{
		fieldPoints:         record.Points,
		fieldTotalAnswers:   record.TotalAnswers,
		fieldCorrectAnswers: record.CorrectAnswers,
		fieldQuizzesStarted: record.QuizzesStarted,
		fieldQuizzesStopped: record.QuizzesStopped,
	}
}

func fieldsToRecord(name string, fields map[string]string) *domain.UserRecord {
	return &domain.UserRecord{
		Name:           name,
		Points:         intField(fields, fieldPoints),
		TotalAnswers:   intField(fields, fieldTotalAnswers),
		CorrectAnswers: intField(fields, fieldCorrectAnswers),
		QuizzesStarted: intField(fields, fieldQuizzesStarted),
		QuizzesStopped: intField(fields, fieldQuizzesStopped),
	}
}

// intField tolerates missing or malformed fields and reads them as zero.
func intField(fields map[string]string, name string) int {
	value, err := strconv.Atoi(fields[name])
	if err != nil {
		return 0
	}
	return value
}
