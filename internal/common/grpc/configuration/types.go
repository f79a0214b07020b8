package configuration

import "google.golang.org/grpc/keepalive"

type GrpcConfig struct {
	Port                       uint16
	KeepaliveParams            keepalive.ServerParameters
	KeepaliveEnforcementPolicy keepalive.EnforcementPolicy
	Tls                        TlsConfig
}

type TlsConfig struct {
	Enabled  bool
	CertPath string
	KeyPath  string
}
