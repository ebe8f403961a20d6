package main

import (
	"context"

	"github.com/nikolacukic/exercise-tracker/internal/domain"
)

type seedExercise struct {
	user        int
	description string
	duration    int
	date        string
}

var seedUsers = []string{"user1", "user2", "user3"}

var seedExercises = []seedExercise{
	{0, "Shoulder press", 10, "2022-03-13"},
	{0, "Leg press", 20, "2022-02-11"},
	{0, "Pushups", 13, "2022-02-22"},
	{1, "Running", 45, "2021-12-23"},
	{1, "Pushups", 10, "2020-09-25"},
	{2, "Pullups", 25, "2022-03-20"},
}

// seed registers the demo users and logs their exercises through the service, so the
// data passes the same validation as API traffic.
func seed(ctx context.Context, service *domain.Service) (int, int, error) {
	ids := make([]int64, 0, len(seedUsers))
	for _, name := range seedUsers {
		user, err := service.RegisterUser(ctx, name)
		if err != nil {
			return 0, 0, err
		}
		ids = append(ids, user.ID)
	}

	for _, e := range seedExercises {
		_, err := service.LogExercise(ctx, ids[e.user], domain.ExerciseInput{
			Description: e.description,
			Duration:    e.duration,
			Date:        e.date,
		})
		if err != nil {
			return 0, 0, err
		}
	}
	return len(ids), len(seedExercises), nil
}
