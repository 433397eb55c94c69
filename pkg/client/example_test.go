package client_test

import (
	"context"
	"fmt"
	"log"

	"github.com/pratik-mahalle/fitcoach/pkg/client"
)

// Example demonstrates basic usage of the FitCoach client
func Example() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.fitcoach.app",
		Token:   "eyJhbGciOi...",
	})

	ctx := context.Background()

	decision, err := c.Access().Check(ctx, "engine")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Engine access: %v (%s)\n", decision.HasAccess, decision.Reason)
}

// ExampleWorkoutService_Search demonstrates searching the catalog by equipment
func ExampleWorkoutService_Search() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.fitcoach.app",
		Token:   "eyJhbGciOi...",
	})

	res, err := c.Workouts().Search(context.Background(), client.SearchOptions{
		Query:     "fran",
		Equipment: []string{"barbell", "gymnastics"},
		Sort:      "popularity",
		Limit:     10,
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, w := range res.Items {
		fmt.Printf("%s (%s) %v\n", w.Name, w.Format, w.Equipment)
	}
}

// ExampleJobService_ForceRefresh demonstrates handling the refresh cooldown
func ExampleJobService_ForceRefresh() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.fitcoach.app",
		Token:   "eyJhbGciOi...",
	})

	res, err := c.Jobs().ForceRefresh(context.Background())
	if apiErr, ok := err.(*client.APIError); ok && apiErr.IsRateLimited() {
		fmt.Println("Refresh already requested today")
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Queued job %s\n", res.JobID)
}
