// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.10
// 	protoc        (unknown)
// source: salon/v1/salon.proto

package salonv1

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	timestamppb "google.golang.org/protobuf/types/known/timestamppb"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type DayAvailabilityRequest struct {
	state   protoimpl.MessageState `protogen:"open.v1"`
	SalonId string                 `protobuf:"bytes,1,opt,name=salon_id,json=salonId,proto3" json:"salon_id,omitempty"`
	StaffId string                 `protobuf:"bytes,2,opt,name=staff_id,json=staffId,proto3" json:"staff_id,omitempty"`
	// Calendar date in the salon's timezone, YYYY-MM-DD.
	Date          string `protobuf:"bytes,3,opt,name=date,proto3" json:"date,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *DayAvailabilityRequest) Reset() {
	*x = DayAvailabilityRequest{}
	mi := &file_salon_v1_salon_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *DayAvailabilityRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*DayAvailabilityRequest) ProtoMessage() {}

func (x *DayAvailabilityRequest) ProtoReflect() protoreflect.Message {
	mi := &file_salon_v1_salon_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use DayAvailabilityRequest.ProtoReflect.Descriptor instead.
func (*DayAvailabilityRequest) Descriptor() ([]byte, []int) {
	return file_salon_v1_salon_proto_rawDescGZIP(), []int{0}
}

func (x *DayAvailabilityRequest) GetSalonId() string {
	if x != nil {
		return x.SalonId
	}
	return ""
}

func (x *DayAvailabilityRequest) GetStaffId() string {
	if x != nil {
		return x.StaffId
	}
	return ""
}

func (x *DayAvailabilityRequest) GetDate() string {
	if x != nil {
		return x.Date
	}
	return ""
}

type DayAvailabilityResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	IsWorking     bool                   `protobuf:"varint,1,opt,name=is_working,json=isWorking,proto3" json:"is_working,omitempty"`
	WorkStartUtc  *timestamppb.Timestamp `protobuf:"bytes,2,opt,name=work_start_utc,json=workStartUtc,proto3" json:"work_start_utc,omitempty"`
	WorkEndUtc    *timestamppb.Timestamp `protobuf:"bytes,3,opt,name=work_end_utc,json=workEndUtc,proto3" json:"work_end_utc,omitempty"`
	BreaksUtc     []*BreakWindow         `protobuf:"bytes,4,rep,name=breaks_utc,json=breaksUtc,proto3" json:"breaks_utc,omitempty"`
	Timezone      string                 `protobuf:"bytes,5,opt,name=timezone,proto3" json:"timezone,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *DayAvailabilityResponse) Reset() {
	*x = DayAvailabilityResponse{}
	mi := &file_salon_v1_salon_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *DayAvailabilityResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*DayAvailabilityResponse) ProtoMessage() {}

func (x *DayAvailabilityResponse) ProtoReflect() protoreflect.Message {
	mi := &file_salon_v1_salon_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use DayAvailabilityResponse.ProtoReflect.Descriptor instead.
func (*DayAvailabilityResponse) Descriptor() ([]byte, []int) {
	return file_salon_v1_salon_proto_rawDescGZIP(), []int{1}
}

func (x *DayAvailabilityResponse) GetIsWorking() bool {
	if x != nil {
		return x.IsWorking
	}
	return false
}

func (x *DayAvailabilityResponse) GetWorkStartUtc() *timestamppb.Timestamp {
	if x != nil {
		return x.WorkStartUtc
	}
	return nil
}

func (x *DayAvailabilityResponse) GetWorkEndUtc() *timestamppb.Timestamp {
	if x != nil {
		return x.WorkEndUtc
	}
	return nil
}

func (x *DayAvailabilityResponse) GetBreaksUtc() []*BreakWindow {
	if x != nil {
		return x.BreaksUtc
	}
	return nil
}

func (x *DayAvailabilityResponse) GetTimezone() string {
	if x != nil {
		return x.Timezone
	}
	return ""
}

type BreakWindow struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	StartUtc      *timestamppb.Timestamp `protobuf:"bytes,1,opt,name=start_utc,json=startUtc,proto3" json:"start_utc,omitempty"`
	EndUtc        *timestamppb.Timestamp `protobuf:"bytes,2,opt,name=end_utc,json=endUtc,proto3" json:"end_utc,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *BreakWindow) Reset() {
	*x = BreakWindow{}
	mi := &file_salon_v1_salon_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *BreakWindow) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*BreakWindow) ProtoMessage() {}

func (x *BreakWindow) ProtoReflect() protoreflect.Message {
	mi := &file_salon_v1_salon_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use BreakWindow.ProtoReflect.Descriptor instead.
func (*BreakWindow) Descriptor() ([]byte, []int) {
	return file_salon_v1_salon_proto_rawDescGZIP(), []int{2}
}

func (x *BreakWindow) GetStartUtc() *timestamppb.Timestamp {
	if x != nil {
		return x.StartUtc
	}
	return nil
}

func (x *BreakWindow) GetEndUtc() *timestamppb.Timestamp {
	if x != nil {
		return x.EndUtc
	}
	return nil
}

type SalonLimitsRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	SalonId       string                 `protobuf:"bytes,1,opt,name=salon_id,json=salonId,proto3" json:"salon_id,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *SalonLimitsRequest) Reset() {
	*x = SalonLimitsRequest{}
	mi := &file_salon_v1_salon_proto_msgTypes[3]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *SalonLimitsRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SalonLimitsRequest) ProtoMessage() {}

func (x *SalonLimitsRequest) ProtoReflect() protoreflect.Message {
	mi := &file_salon_v1_salon_proto_msgTypes[3]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use SalonLimitsRequest.ProtoReflect.Descriptor instead.
func (*SalonLimitsRequest) Descriptor() ([]byte, []int) {
	return file_salon_v1_salon_proto_rawDescGZIP(), []int{3}
}

func (x *SalonLimitsRequest) GetSalonId() string {
	if x != nil {
		return x.SalonId
	}
	return ""
}

type SalonLimitsResponse struct {
	state                   protoimpl.MessageState `protogen:"open.v1"`
	Active                  bool                   `protobuf:"varint,1,opt,name=active,proto3" json:"active,omitempty"`
	MaxStaff                int32                  `protobuf:"varint,2,opt,name=max_staff,json=maxStaff,proto3" json:"max_staff,omitempty"`
	MaxAppointmentsPerMonth int32                  `protobuf:"varint,3,opt,name=max_appointments_per_month,json=maxAppointmentsPerMonth,proto3" json:"max_appointments_per_month,omitempty"`
	unknownFields           protoimpl.UnknownFields
	sizeCache               protoimpl.SizeCache
}

func (x *SalonLimitsResponse) Reset() {
	*x = SalonLimitsResponse{}
	mi := &file_salon_v1_salon_proto_msgTypes[4]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *SalonLimitsResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SalonLimitsResponse) ProtoMessage() {}

func (x *SalonLimitsResponse) ProtoReflect() protoreflect.Message {
	mi := &file_salon_v1_salon_proto_msgTypes[4]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use SalonLimitsResponse.ProtoReflect.Descriptor instead.
func (*SalonLimitsResponse) Descriptor() ([]byte, []int) {
	return file_salon_v1_salon_proto_rawDescGZIP(), []int{4}
}

func (x *SalonLimitsResponse) GetActive() bool {
	if x != nil {
		return x.Active
	}
	return false
}

func (x *SalonLimitsResponse) GetMaxStaff() int32 {
	if x != nil {
		return x.MaxStaff
	}
	return 0
}

func (x *SalonLimitsResponse) GetMaxAppointmentsPerMonth() int32 {
	if x != nil {
		return x.MaxAppointmentsPerMonth
	}
	return 0
}

var File_salon_v1_salon_proto protoreflect.FileDescriptor

const file_salon_v1_salon_proto_rawDesc = "" +
	"\n" +
	"\x14salon/v1/salon.proto\x12\bsalon.v1\x1a\x1fgoogle/protobuf/timestamp.proto\"b\n" +
	"\x16DayAvailabilityRequest\x12\x19\n" +
	"\bsalon_id\x18\x01 \x01(\tR\asalonId\x12\x19\n" +
	"\bstaff_id\x18\x02 \x01(\tR\astaffId\x12\x12\n" +
	"\x04date\x18\x03 \x01(\tR\x04date\"\x8a\x02\n" +
	"\x17DayAvailabilityResponse\x12\x1d\n" +
	"\n" +
	"is_working\x18\x01 \x01(\bR\tisWorking\x12@\n" +
	"\x0ework_start_utc\x18\x02 \x01(\v2\x1a.google.protobuf.TimestampR\fworkStartUtc\x12<\n" +
	"\fwork_end_utc\x18\x03 \x01(\v2\x1a.google.protobuf.TimestampR\n" +
	"workEndUtc\x124\n" +
	"\n" +
	"breaks_utc\x18\x04 \x03(\v2\x15.salon.v1.BreakWindowR\tbreaksUtc\x12\x1a\n" +
	"\btimezone\x18\x05 \x01(\tR\btimezone\"{\n" +
	"\vBreakWindow\x127\n" +
	"\tstart_utc\x18\x01 \x01(\v2\x1a.google.protobuf.TimestampR\bstartUtc\x123\n" +
	"\aend_utc\x18\x02 \x01(\v2\x1a.google.protobuf.TimestampR\x06endUtc\"/\n" +
	"\x12SalonLimitsRequest\x12\x19\n" +
	"\bsalon_id\x18\x01 \x01(\tR\asalonId\"\x87\x01\n" +
	"\x13SalonLimitsResponse\x12\x16\n" +
	"\x06active\x18\x01 \x01(\bR\x06active\x12\x1b\n" +
	"\tmax_staff\x18\x02 \x01(\x05R\bmaxStaff\x12;\n" +
	"\x1amax_appointments_per_month\x18\x03 \x01(\x05R\x17maxAppointmentsPerMonth2\xb8\x01\n" +
	"\fSalonService\x12Y\n" +
	"\x12GetDayAvailability\x12 .salon.v1.DayAvailabilityRequest\x1a!.salon.v1.DayAvailabilityResponse\x12M\n" +
	"\x0eGetSalonLimits\x12\x1c.salon.v1.SalonLimitsRequest\x1a\x1d.salon.v1.SalonLimitsResponseBAZ?github.com/tomide-adeyemi/salonbook/protos/gen/salon/v1;salonv1b\x06proto3"

var (
	file_salon_v1_salon_proto_rawDescOnce sync.Once
	file_salon_v1_salon_proto_rawDescData []byte
)

func file_salon_v1_salon_proto_rawDescGZIP() []byte {
	file_salon_v1_salon_proto_rawDescOnce.Do(func() {
		file_salon_v1_salon_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_salon_v1_salon_proto_rawDesc), len(file_salon_v1_salon_proto_rawDesc)))
	})
	return file_salon_v1_salon_proto_rawDescData
}

var file_salon_v1_salon_proto_msgTypes = make([]protoimpl.MessageInfo, 5)
var file_salon_v1_salon_proto_goTypes = []any{
	(*DayAvailabilityRequest)(nil),  // 0: salon.v1.DayAvailabilityRequest
	(*DayAvailabilityResponse)(nil), // 1: salon.v1.DayAvailabilityResponse
	(*BreakWindow)(nil),             // 2: salon.v1.BreakWindow
	(*SalonLimitsRequest)(nil),      // 3: salon.v1.SalonLimitsRequest
	(*SalonLimitsResponse)(nil),     // 4: salon.v1.SalonLimitsResponse
	(*timestamppb.Timestamp)(nil),   // 5: google.protobuf.Timestamp
}
var file_salon_v1_salon_proto_depIdxs = []int32{
	5, // 0: salon.v1.DayAvailabilityResponse.work_start_utc:type_name -> google.protobuf.Timestamp
	5, // 1: salon.v1.DayAvailabilityResponse.work_end_utc:type_name -> google.protobuf.Timestamp
	2, // 2: salon.v1.DayAvailabilityResponse.breaks_utc:type_name -> salon.v1.BreakWindow
	5, // 3: salon.v1.BreakWindow.start_utc:type_name -> google.protobuf.Timestamp
	5, // 4: salon.v1.BreakWindow.end_utc:type_name -> google.protobuf.Timestamp
	0, // 5: salon.v1.SalonService.GetDayAvailability:input_type -> salon.v1.DayAvailabilityRequest
	3, // 6: salon.v1.SalonService.GetSalonLimits:input_type -> salon.v1.SalonLimitsRequest
	1, // 7: salon.v1.SalonService.GetDayAvailability:output_type -> salon.v1.DayAvailabilityResponse
	4, // 8: salon.v1.SalonService.GetSalonLimits:output_type -> salon.v1.SalonLimitsResponse
	7, // [7:9] is the sub-list for method output_type
	5, // [5:7] is the sub-list for method input_type
	5, // [5:5] is the sub-list for extension type_name
	5, // [5:5] is the sub-list for extension extendee
	0, // [0:5] is the sub-list for field type_name
}

func init() { file_salon_v1_salon_proto_init() }
func file_salon_v1_salon_proto_init() {
	if File_salon_v1_salon_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_salon_v1_salon_proto_rawDesc), len(file_salon_v1_salon_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   5,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_salon_v1_salon_proto_goTypes,
		DependencyIndexes: file_salon_v1_salon_proto_depIdxs,
		MessageInfos:      file_salon_v1_salon_proto_msgTypes,
	}.Build()
	File_salon_v1_salon_proto = out.File
	file_salon_v1_salon_proto_goTypes = nil
	file_salon_v1_salon_proto_depIdxs = nil
}
