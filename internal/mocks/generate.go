package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/tracked --output domain/tracked --outpkg trackedmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name StatsProvider --dir ../usecase --output usecase --outpkg usecasemock --filename stats_provider_mock.go
