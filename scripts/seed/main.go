// Command seed loads a small fixture set (rosters, students, exam
// schedules) into the configured database for local development.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/classhub-id/academic-eval-api/pkg/config"
	"github.com/classhub-id/academic-eval-api/pkg/database"
)

func main() {
	var classNumber int
	var students int
	flag.IntVar(&classNumber, "class", 8, "class number to seed")
	flag.IntVar(&students, "students", 25, "number of students to create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed(ctx, db, classNumber, students); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("seeded class %d with %d students", classNumber, students)
}

func seed(ctx context.Context, db *sqlx.DB, classNumber, studentCount int) error {
	subjects := []string{"Mathematics", "English", "Science", "History"}
	now := time.Now().UTC()

	_, err := db.ExecContext(ctx, `INSERT INTO class_rosters (id, class_number, subjects, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $4)
        ON CONFLICT (class_number) DO UPDATE SET subjects = EXCLUDED.subjects, updated_at = EXCLUDED.updated_at`,
		uuid.NewString(), classNumber, pq.StringArray(subjects), now)
	if err != nil {
		return fmt.Errorf("seed roster: %w", err)
	}

	for i := 1; i <= studentCount; i++ {
		_, err := db.ExecContext(ctx, `INSERT INTO students (id, full_name, roll_number, class_number, active, created_at, updated_at)
            VALUES ($1, $2, $3, $4, true, $5, $5)
            ON CONFLICT (id) DO NOTHING`,
			uuid.NewString(), fmt.Sprintf("Student %02d", i), fmt.Sprintf("%d-%03d", classNumber, i), classNumber, now)
		if err != nil {
			return fmt.Errorf("seed student %d: %w", i, err)
		}
	}

	examinationID := fmt.Sprintf("midterm-%d", now.Year())
	for _, subject := range subjects {
		_, err := db.ExecContext(ctx, `INSERT INTO exam_schedules
            (id, examination_id, class_number, subject_id, total_marks, passing_marks, exam_date, invigilators, created_at, updated_at)
            VALUES ($1, $2, $3, $4, 100, 40, $5, $6, $7, $7)
            ON CONFLICT DO NOTHING`,
			uuid.NewString(), examinationID, classNumber, subject, now.AddDate(0, 0, 7), pq.StringArray{}, now)
		if err != nil {
			return fmt.Errorf("seed schedule for %s: %w", subject, err)
		}
	}
	return nil
}
