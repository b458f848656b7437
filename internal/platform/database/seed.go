package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type seedCategory struct {
	name        string
	subject     string
	description string
}

type seedProblem struct {
	title         string
	description   string
	subject       string
	difficulty    string
	categoryName  string
	correctAnswer string
	points        int
}

var seedCategories = []seedCategory{
	{"Type 1 problems", "math", "Basic math problems"},
	{"Type 2 problems", "math", "Intermediate math problems"},
	{"Type 3 problems", "math", "Advanced math problems"},
	{"Type 1 problems", "informatics", "Basic informatics problems"},
	{"Type 2 problems", "informatics", "Intermediate informatics problems"},
	{"Type 3 problems", "informatics", "Advanced informatics problems"},
}

var seedProblems = []seedProblem{
	{
		title:         "Quadratic equation",
		description:   "Solve the equation: x^2 - 5x + 6 = 0",
		subject:       "math",
		difficulty:    "easy",
		categoryName:  "Type 1 problems",
		correctAnswer: "2;3",
		points:        10,
	},
	{
		title:         "Triangle area",
		description:   "Find the area of a triangle with sides 5, 12, 13",
		subject:       "math",
		difficulty:    "medium",
		categoryName:  "Type 2 problems",
		correctAnswer: "30",
		points:        20,
	},
	{
		title:         "Binary search",
		description:   "What is the time complexity of binary search?",
		subject:       "informatics",
		difficulty:    "easy",
		categoryName:  "Type 1 problems",
		correctAnswer: "O(log n)",
		points:        10,
	},
	{
		title:         "Sorting algorithms",
		description:   "Which sorting algorithm has O(n^2) complexity?",
		subject:       "informatics",
		difficulty:    "medium",
		categoryName:  "Type 2 problems",
		correctAnswer: "bubble sort",
		points:        20,
	},
}

// Seed inserts the default categories and sample problems when the catalog
// is empty. Safe to call on every startup.
func Seed(ctx context.Context) error {
	var count int
	if err := DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return fmt.Errorf("database.Seed count categories: %w", err)
	}

	categoryIDs := map[string]string{} // subject/name -> id
	if count == 0 {
		for _, c := range seedCategories {
			id := uuid.NewString()
			categorySlug := slug.Make(c.subject + " " + c.name)
			_, err := DB.ExecContext(ctx,
				`INSERT INTO categories (id, name, slug, subject, description) VALUES ($1, $2, $3, $4, $5)`,
				id, c.name, categorySlug, c.subject, c.description)
			if err != nil {
				return fmt.Errorf("database.Seed insert category: %w", err)
			}
			categoryIDs[c.subject+"/"+c.name] = id
		}
	} else {
		rows, err := DB.QueryContext(ctx, `SELECT id, name, subject FROM categories`)
		if err != nil {
			return fmt.Errorf("database.Seed load categories: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var id, name, subject string
			if err := rows.Scan(&id, &name, &subject); err != nil {
				return fmt.Errorf("database.Seed scan category: %w", err)
			}
			categoryIDs[subject+"/"+name] = id
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("database.Seed categories rows: %w", err)
		}
	}

	if err := DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM problems`).Scan(&count); err != nil {
		return fmt.Errorf("database.Seed count problems: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, p := range seedProblems {
		var categoryID any
		if id, ok := categoryIDs[p.subject+"/"+p.categoryName]; ok {
			categoryID = id
		}
		_, err := DB.ExecContext(ctx,
			`INSERT INTO problems (id, title, slug, description, subject, difficulty, category_id, correct_answer, points)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			uuid.NewString(), p.title, slug.Make(p.subject+" "+p.title), p.description,
			p.subject, p.difficulty, categoryID, p.correctAnswer, p.points)
		if err != nil {
			return fmt.Errorf("database.Seed insert problem: %w", err)
		}
	}
	return nil
}
