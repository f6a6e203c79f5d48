package client_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/UnatyNomsa/pitchpal/pkg/client"
)

// Example demonstrates a full practice workflow
func Example() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	ctx := context.Background()

	// Mint a token for the acting user
	if _, err := c.Auth().Token(ctx, "seller-42", "seller@example.com"); err != nil {
		log.Fatal(err)
	}

	// Create a practice session
	session, err := c.Sessions().Create(ctx, &client.CreateSessionRequest{
		Title: "Q3 renewal pitch",
	})
	if err != nil {
		log.Fatal(err)
	}

	// Upload the recording for analysis
	audio, err := os.Open("pitch.webm")
	if err != nil {
		log.Fatal(err)
	}
	defer audio.Close()

	analyzed, err := c.Sessions().Analyze(ctx, session.ID, audio, "pitch.webm")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Overall score: %d\n", *analyzed.OverallScore)
}

// ExampleAnalysisService_AnalyzeText demonstrates sessionless scoring
func ExampleAnalysisService_AnalyzeText() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	analysis, err := c.Analysis().AnalyzeText(context.Background(),
		"Our platform cuts onboarding time in half. Book a demo this week.")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Feedback: %s\n", analysis.Feedback)
}

// ExampleSubscriptionService_Get demonstrates reading quota state
func ExampleSubscriptionService_Get() {
	c := client.NewClient(client.Config{
		BaseURL: "http://localhost:8080",
	})

	sub, err := c.Subscriptions().Get(context.Background(), "seller-42")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Tier: %s, sessions today: %d\n", sub.User.SubscriptionTier, sub.Usage.SessionsToday)
}
