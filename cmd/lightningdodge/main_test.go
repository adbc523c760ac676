package main

import (
	"reflect"
	"testing"
)

func TestParseFrameList(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"30,60,119", []int{30, 60, 119}, false},
		{" 1 , 2 ,", []int{1, 2}, false},
		{"", nil, false},
		{"1,x", nil, true},
		{"0", nil, true},
		{"-5", nil, true},
	}

	for _, tt := range tests {
		got, err := parseFrameList(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFrameList(%q) error = %v, wantErr %t", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFrameList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
