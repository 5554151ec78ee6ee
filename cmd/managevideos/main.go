package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"edustore/internal/admin"
	"edustore/internal/cascade"
	"edustore/internal/catalog"
	"edustore/internal/config"
	"edustore/internal/domain"
	"edustore/internal/session"
)

func main() {
	var (
		deleteID = flag.String("delete", "", "video id to delete")

		createTitle   = flag.String("create-title", "", "title for a new video (triggers create)")
		createSubject = flag.String("create-subject", "", "subject id for the new video")
		createChapter = flag.String("create-chapter", "", "chapter name for the new video")
		createPart    = flag.Int("create-part", 1, "part number for the new video")
		createURL     = flag.String("create-url", "", "video url for the new video")
		createNote    = flag.String("create-note", "", "note link for the new video (optional)")
		createFree    = flag.Bool("create-free", false, "mark the new video free")
	)
	flag.Parse()

	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()

	cat := catalog.New(cfg.APIBaseURL, session.StaticToken(cfg.APIToken), logger)
	dir := admin.New(cat, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	videos, subjects, err := dir.Snapshot(ctx)
	if err != nil {
		log.Fatalf("snapshot: %v", err)
	}

	mutated := false

	if *deleteID != "" {
		if err := dir.DeleteVideo(ctx, *deleteID); err != nil {
			log.Fatalf("delete: %v", err)
		}
		mutated = true
	}

	if *createTitle != "" {
		v := domain.Video{
			SubjectID:   *createSubject,
			Title:       *createTitle,
			ChapterName: *createChapter,
			PartNumber:  *createPart,
			VideoURL:    *createURL,
			NoteLink:    *createNote,
			IsFree:      *createFree,
		}

		// The edit form pins the subject through the cascading filter;
		// do the same here so an off-catalog subject id is caught early.
		eng := cascade.New(subjects)
		if err := eng.Seed(v.SubjectID); err != nil {
			log.Fatalf("create: %v", err)
		}
		v.SubjectTitle = eng.SubjectTitle()

		if domain.PartTaken(videos, v) {
			logger.Warn("part number already taken in this chapter",
				zap.String("subjectID", v.SubjectID),
				zap.String("chapter", v.ChapterName),
				zap.Int("part", v.PartNumber))
		}

		id, err := dir.CreateVideo(ctx, v)
		if err != nil {
			log.Fatalf("create: %v", err)
		}
		fmt.Printf("created %s\n", id)
		mutated = true
	}

	// Mutations only acknowledge; the listing below is the explicit
	// re-read, issued after every ack has arrived.
	if mutated {
		videos, err = dir.ListVideos(ctx)
		if err != nil {
			log.Fatalf("re-list: %v", err)
		}
	}

	printLibrary(videos)
}

func printLibrary(videos []domain.Video) {
	if len(videos) == 0 {
		fmt.Println("No videos found.")
		return
	}
	for _, ch := range domain.GroupChapters(videos) {
		fmt.Printf("%s\n", ch.Name)
		for _, v := range ch.Parts {
			free := ""
			if v.IsFree {
				free = "  [free]"
			}
			fmt.Printf("  part %2d  %-40s %s (%s)%s\n", v.PartNumber, v.Title, v.ID, v.SubjectTitle, free)
		}
	}
	fmt.Printf("%d videos total\n", len(videos))
}
