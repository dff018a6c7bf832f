package layout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeat(t *testing.T) {
	tests := []struct {
		name        string
		configID    string
		seatName    string
		seatClass   string
		geometry    json.RawMessage
		wantErr     bool
		errExpected error
	}{
		{name: "正常な座席作成", configID: "config-1", seatName: "A-12", seatClass: "VIP", wantErr: false},
		{name: "配置情報付きの座席作成", configID: "config-1", seatName: "A-12", seatClass: "VIP", geometry: json.RawMessage(`{"x":10,"y":20}`), wantErr: false},
		{name: "会場構成ID未指定", configID: "", seatName: "A-12", seatClass: "VIP", wantErr: true, errExpected: ErrVenueConfigIDRequired},
		{name: "座席名未指定", configID: "config-1", seatName: "", seatClass: "VIP", wantErr: true, errExpected: ErrSeatNameRequired},
		{name: "座席クラス未指定", configID: "config-1", seatName: "A-12", seatClass: "", wantErr: true, errExpected: ErrSeatClassRequired},
		{name: "不正なJSON配置情報", configID: "config-1", seatName: "A-12", seatClass: "VIP", geometry: json.RawMessage(`{broken`), wantErr: true, errExpected: ErrInvalidGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSeat(tt.configID, tt.seatName, tt.seatClass, nil, nil, tt.geometry)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.errExpected)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.seatName, s.Name)
			assert.Equal(t, tt.seatClass, s.SeatClass)
		})
	}
}

func TestNewTable(t *testing.T) {
	tests := []struct {
		name        string
		configID    string
		minSeats    int
		maxSeats    int
		wantErr     bool
		errExpected error
	}{
		{name: "正常なテーブル作成", configID: "config-1", minSeats: 2, maxSeats: 6, wantErr: false},
		{name: "最小と最大が同数", configID: "config-1", minSeats: 4, maxSeats: 4, wantErr: false},
		{name: "会場構成ID未指定", configID: "", minSeats: 2, maxSeats: 6, wantErr: true, errExpected: ErrVenueConfigIDRequired},
		{name: "最小座席数がゼロ", configID: "config-1", minSeats: 0, maxSeats: 6, wantErr: true, errExpected: ErrInvalidTableSize},
		{name: "最大が最小より小さい", configID: "config-1", minSeats: 4, maxSeats: 2, wantErr: true, errExpected: ErrInvalidTableSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewTable(tt.configID, tt.minSeats, tt.maxSeats, nil)
			err := tbl.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.errExpected)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTable_FitsParty(t *testing.T) {
	tbl := NewTable("config-1", 2, 6, nil)
	assert.False(t, tbl.FitsParty(1))
	assert.True(t, tbl.FitsParty(2))
	assert.True(t, tbl.FitsParty(6))
	assert.False(t, tbl.FitsParty(7))
}
