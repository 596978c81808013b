package main

import (
	"context"
	"fmt"

	"collabhub-be/internal/entity"
	"collabhub-be/internal/repository/specification"
	"collabhub-be/internal/repository/unitofwork"
	"collabhub-be/pkg/matching"

	"github.com/fatih/color"
	"golang.org/x/crypto/bcrypt"
)

const demoPassword = "password123"

var demoUsers = []entity.User{
	{Username: "alice", FullName: "Alice Tan", Role: entity.UserRoleStudent, College: "NUS", Bio: "Frontend tinkerer",
		SkillsKnown: []string{"JavaScript", "React"}, SkillsWanted: []string{"Go", "Docker"}},
	{Username: "budi", FullName: "Budi Santoso", Role: entity.UserRoleMentor, College: "ITB", Bio: "Backend engineer, loves Go",
		SkillsKnown: []string{"Go", "Docker", "PostgreSQL"}, SkillsWanted: []string{"React"}},
	{Username: "chitra", FullName: "Chitra Rao", Role: entity.UserRoleMentor, College: "IIT Madras", Bio: "Data science TA",
		SkillsKnown: []string{"Python", "Machine Learning", "Docker"}, SkillsWanted: []string{"Go"}},
	{Username: "dmitri", FullName: "Dmitri Volkov", Role: entity.UserRoleStudent, College: "MSU", Bio: "Learning systems programming",
		SkillsKnown: []string{"C", "Linux"}, SkillsWanted: []string{"Go", "Python"}},
	{Username: "eve", FullName: "Eve Martin", Role: entity.UserRoleStudent, College: "EPFL", Bio: "Design and frontend",
		SkillsKnown: []string{"Figma", "React"}, SkillsWanted: []string{"Machine Learning"}},
}

// seedUsers creates the demo profiles that do not exist yet and returns all of them.
func seedUsers(ctx context.Context, uowFactory unitofwork.RepositoryFactory) ([]*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashed := string(hash)

	repo := uowFactory.NewUnitOfWork(ctx).UserRepository()
	out := make([]*entity.User, 0, len(demoUsers))
	for i := range demoUsers {
		u := demoUsers[i]
		u.Email = u.Username + "@collabhub.dev"

		existing, err := repo.FindOne(ctx, specification.ByEmail{Email: u.Email})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			color.Yellow("  %s already exists, skipping", u.Email)
			out = append(out, existing)
			continue
		}

		u.PasswordHash = &hashed
		u.Level = 1
		if err := repo.Create(ctx, &u); err != nil {
			return nil, fmt.Errorf("create %s: %w", u.Username, err)
		}
		color.Green("  created %s (%s)", u.Username, u.Email)
		out = append(out, &u)
	}
	return out, nil
}

// printRanking shows who each demo profile would be matched with.
func printRanking(users []*entity.User, ranker *matching.Ranker) {
	for _, viewer := range users {
		color.New(color.Bold).Printf("\n%s wants %v\n", viewer.Username, viewer.SkillsWanted)
		for _, c := range ranker.Rank(viewer, users) {
			fmt.Printf("  %-8s score=%-3d teaches %v\n", c.User.Username, c.MatchScore, c.MatchingSkills)
		}
	}
}
