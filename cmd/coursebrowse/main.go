package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"edustore/internal/catalog"
	"edustore/internal/config"
	"edustore/internal/domain"
	"edustore/internal/entitlement"
	"edustore/internal/selection"
	"edustore/internal/session"
)

func main() {
	var (
		courseID  = flag.String("course", "", "course id to browse")
		selectIDs = flag.String("select", "", "comma-separated subject ids to toggle into the selection")
		role      = flag.String("role", "user", "role of the browsing user (user|admin)")
		purchased = flag.String("purchased", "", "comma-separated subject ids the user already owns")
		email     = flag.String("email", "student@example.com", "email of the browsing user")
	)
	flag.Parse()

	if *courseID == "" {
		log.Fatal("missing -course")
	}

	// .env opcional
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()

	user := domain.User{
		ID:                "cli",
		Email:             *email,
		Role:              domain.Role(*role),
		PurchasedSubjects: splitIDs(*purchased),
	}

	sess := session.Establish(user, session.StaticToken(cfg.APIToken), logger)
	defer sess.Teardown()

	client := catalog.New(cfg.APIBaseURL, sess, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// A CLI run is one view: enter, fetch, apply only while still current.
	var guard session.ViewGuard
	view := guard.Enter()
	defer guard.Leave()

	course, err := client.FetchCourse(ctx, *courseID)
	if err != nil {
		log.Fatalf("fetch course: %v", err)
	}
	if !guard.Current(view) {
		return
	}

	fmt.Printf("%s (%s - %s)\n\n", course.Title, course.Department, course.YearLevel)

	sel := selection.New()
	for _, id := range splitIDs(*selectIDs) {
		sel.Toggle(user, id)
	}

	for _, s := range course.Subjects {
		status := entitlement.SubjectStatus(user, s.ID)
		mark := " "
		if sel.Has(s.ID) {
			mark = "x"
		}
		line := fmt.Sprintf("[%s] %-40s %5d TK", mark, s.Title, s.Price)
		if s.OriginalPrice > 0 {
			line += fmt.Sprintf("  (was %d)", s.OriginalPrice)
		}
		fmt.Printf("%s  %s\n", line, status)
	}

	fmt.Printf("\nTotal: %d TK (%d selected)\n", sel.Total(course), sel.Len())

	decision := entitlement.AuthorizeCheckout(user, sel.Selected())
	if decision.Allowed {
		fmt.Printf("checkout: ok, subjects=%s\n", strings.Join(sel.Selected(), ","))
	} else {
		fmt.Printf("checkout: blocked: %s\n", decision.Message)
	}
}

func splitIDs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
