package client

import (
	"google.golang.org/grpc"

	"github.com/jacksonrnewhouse/arroyo/pkg/api"
)

func WithConnection(apiConnectionDetails *ApiConnectionDetails, action func(*grpc.ClientConn) error) error {
	conn, err := CreateApiConnection(apiConnectionDetails)
	if err != nil {
		return err
	}
	defer conn.Close()
	return action(conn)
}

func WithApiClient(apiConnectionDetails *ApiConnectionDetails, action func(api.ApiClient) error) error {
	return WithConnection(apiConnectionDetails, func(cc *grpc.ClientConn) error {
		client := api.NewApiClient(cc)
		return action(client)
	})
}
