/*
Package clientsdk provides a Go client for the client registry HTTP API.

	c := clientsdk.NewSDKClient("http://localhost:8000")

	created, err := c.CreateClient(ctx, clientsdk.CreateClientRequest{
		Name:  "Acme Pty Ltd",
		Phone: clientsdk.String("555-0100"),
	})

	recent, err := c.ListClients(ctx, 10)

Non-2xx responses are returned as *APIError carrying the status code and the
server's detail message:

	var apiErr *clientsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnprocessableEntity {
		// rejected input
	}

The request and response types in this package are also the wire types used
by the server handlers.
*/
package clientsdk
