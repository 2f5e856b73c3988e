package mocks

import (
	"time"

	gomock "github.com/golang/mock/gomock"
)

// GetMockedConfig returns a config with the defaults every component reads.
func GetMockedConfig(ctrl *gomock.Controller) *MockConfig {
	config := NewMockConfig(ctrl)
	config.EXPECT().GetBool("verbose").Return(false).AnyTimes()
	config.EXPECT().GetString("names").Return("off").AnyTimes()
	config.EXPECT().GetString("name_parser").Return("scene").AnyTimes()
	config.EXPECT().GetDuration("timeout").Return(5 * time.Second).AnyTimes()
	config.EXPECT().GetDuration("cache_ttl").Return(time.Minute).AnyTimes()
	config.EXPECT().GetBytes("api_key").Return(nil).AnyTimes()
	config.EXPECT().GetInt("port").Return(3333).AnyTimes()
	return config
}
