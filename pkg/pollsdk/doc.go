/*
Package pollsdk is a Go client for the polls service.

# SDKClient vs Session

  - SDKClient: anonymous endpoints (health, register, login, refresh, reading questions)
  - Session: endpoints that need a bearer token (creating questions, voting, admin listings)

Create an SDKClient and log in to get a Session:

	client := pollsdk.NewSDKClient("http://localhost:8080")

	questions, err := client.ListQuestions(ctx, &pollsdk.ListQuestionsOptions{Search: "colour"})

	session, err := client.Login(ctx, "alice", "secret1")

	err = session.Vote(ctx, questions[0].Choices[0].ID)
	if pollsdk.IsConflict(err) {
		// already voted on this question
	}

# Token refresh

Access tokens are short lived. When the server answers 401 the Session exchanges
its refresh token at /token/refresh and retries the request once. If the server
rotates refresh tokens the new one replaces the old.

# Errors

Every non-success response becomes an *APIError carrying the status code, the
"error" or "detail" message and, for registration, per-field messages:

	_, err := client.Register(ctx, req)
	var apiErr *pollsdk.APIError
	if errors.As(err, &apiErr) {
		fmt.Println(apiErr.Fields["username"])
	}
*/
package pollsdk
