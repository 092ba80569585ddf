package servers

//go:generate sh -c "cd ../../.. && oapi-codegen -config api/servers.cfg.yaml api/openapi.yml"
