// Package lib provides a Go SDK to manage construction projects, their tasks
// and resources against the project management REST API.
//
// A [Client] is the application root: it owns one cache of the fetched
// entities and one notification slot, shared by all its operations. Reads
// always come from the cache, operations refresh it.
//
// # Quick Start
//
//	client, err := lib.New(lib.Config{APIURL: "http://localhost:3001/api"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	projects, err := client.FetchProjects(ctx)
//	if err != nil {
//	    // The fetch error is also on client.Projects().Error.
//	    log.Fatal(err)
//	}
//
//	// Derived views never mutate the cache.
//	active := client.ProjectView(lib.ProjectFilter{Status: "in-progress"}, lib.ProjectSortBudget)
//	stats := client.ProjectStats()
//
// # Mutations and Notifications
//
// Creations, updates and deletions update the cache on success and always
// leave a notification with the result:
//
//	_, err := client.CreateProject(ctx, lib.ProjectCreate{...})
//	n := client.Notification() // {Visible: true, Message: "Project created successfully", Severity: "success"}
//
// A failed mutation leaves the cache untouched and the notification has the
// error severity. Notifications auto dismiss after [Config].NotificationDuration,
// use [Config].OnNotification to observe them.
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: The entity does not exist.
//   - [ErrNotValid]: Invalid input, rejected locally or by the API.
//   - [ErrNetwork]: The API could not be reached.
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines. Results of
// operations whose context was cancelled before they completed are discarded.
package lib
