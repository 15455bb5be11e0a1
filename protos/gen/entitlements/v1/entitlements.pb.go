// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.10
// 	protoc        (unknown)
// source: entitlements/v1/entitlements.proto

package entitlementsv1

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
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

type EntitlementsRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	SalonId       string                 `protobuf:"bytes,1,opt,name=salon_id,json=salonId,proto3" json:"salon_id,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *EntitlementsRequest) Reset() {
	*x = EntitlementsRequest{}
	mi := &file_entitlements_v1_entitlements_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *EntitlementsRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*EntitlementsRequest) ProtoMessage() {}

func (x *EntitlementsRequest) ProtoReflect() protoreflect.Message {
	mi := &file_entitlements_v1_entitlements_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use EntitlementsRequest.ProtoReflect.Descriptor instead.
func (*EntitlementsRequest) Descriptor() ([]byte, []int) {
	return file_entitlements_v1_entitlements_proto_rawDescGZIP(), []int{0}
}

func (x *EntitlementsRequest) GetSalonId() string {
	if x != nil {
		return x.SalonId
	}
	return ""
}

type EntitlementsResponse struct {
	state                  protoimpl.MessageState `protogen:"open.v1"`
	Tier                   string                 `protobuf:"bytes,1,opt,name=tier,proto3" json:"tier,omitempty"`
	MaxStaff               uint32                 `protobuf:"varint,2,opt,name=max_staff,json=maxStaff,proto3" json:"max_staff,omitempty"`
	MaxMonthlyAppointments uint32                 `protobuf:"varint,3,opt,name=max_monthly_appointments,json=maxMonthlyAppointments,proto3" json:"max_monthly_appointments,omitempty"`
	unknownFields          protoimpl.UnknownFields
	sizeCache              protoimpl.SizeCache
}

func (x *EntitlementsResponse) Reset() {
	*x = EntitlementsResponse{}
	mi := &file_entitlements_v1_entitlements_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *EntitlementsResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*EntitlementsResponse) ProtoMessage() {}

func (x *EntitlementsResponse) ProtoReflect() protoreflect.Message {
	mi := &file_entitlements_v1_entitlements_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use EntitlementsResponse.ProtoReflect.Descriptor instead.
func (*EntitlementsResponse) Descriptor() ([]byte, []int) {
	return file_entitlements_v1_entitlements_proto_rawDescGZIP(), []int{1}
}

func (x *EntitlementsResponse) GetTier() string {
	if x != nil {
		return x.Tier
	}
	return ""
}

func (x *EntitlementsResponse) GetMaxStaff() uint32 {
	if x != nil {
		return x.MaxStaff
	}
	return 0
}

func (x *EntitlementsResponse) GetMaxMonthlyAppointments() uint32 {
	if x != nil {
		return x.MaxMonthlyAppointments
	}
	return 0
}

var File_entitlements_v1_entitlements_proto protoreflect.FileDescriptor

const file_entitlements_v1_entitlements_proto_rawDesc = "" +
	"\n" +
	"\"entitlements/v1/entitlements.proto\x12\x0fentitlements.v1\"0\n" +
	"\x13EntitlementsRequest\x12\x19\n" +
	"\bsalon_id\x18\x01 \x01(\tR\asalonId\"\x81\x01\n" +
	"\x14EntitlementsResponse\x12\x12\n" +
	"\x04tier\x18\x01 \x01(\tR\x04tier\x12\x1b\n" +
	"\tmax_staff\x18\x02 \x01(\rR\bmaxStaff\x128\n" +
	"\x18max_monthly_appointments\x18\x03 \x01(\rR\x16maxMonthlyAppointments2u\n" +
	"\x13EntitlementsService\x12^\n" +
	"\x0fGetEntitlements\x12$.entitlements.v1.EntitlementsRequest\x1a%.entitlements.v1.EntitlementsResponseBOZMgithub.com/tomide-adeyemi/salonbook/protos/gen/entitlements/v1;entitlementsv1b\x06proto3"

var (
	file_entitlements_v1_entitlements_proto_rawDescOnce sync.Once
	file_entitlements_v1_entitlements_proto_rawDescData []byte
)

func file_entitlements_v1_entitlements_proto_rawDescGZIP() []byte {
	file_entitlements_v1_entitlements_proto_rawDescOnce.Do(func() {
		file_entitlements_v1_entitlements_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_entitlements_v1_entitlements_proto_rawDesc), len(file_entitlements_v1_entitlements_proto_rawDesc)))
	})
	return file_entitlements_v1_entitlements_proto_rawDescData
}

var file_entitlements_v1_entitlements_proto_msgTypes = make([]protoimpl.MessageInfo, 2)
var file_entitlements_v1_entitlements_proto_goTypes = []any{
	(*EntitlementsRequest)(nil),  // 0: entitlements.v1.EntitlementsRequest
	(*EntitlementsResponse)(nil), // 1: entitlements.v1.EntitlementsResponse
}
var file_entitlements_v1_entitlements_proto_depIdxs = []int32{
	0, // 0: entitlements.v1.EntitlementsService.GetEntitlements:input_type -> entitlements.v1.EntitlementsRequest
	1, // 1: entitlements.v1.EntitlementsService.GetEntitlements:output_type -> entitlements.v1.EntitlementsResponse
	1, // [1:2] is the sub-list for method output_type
	0, // [0:1] is the sub-list for method input_type
	0, // [0:0] is the sub-list for extension type_name
	0, // [0:0] is the sub-list for extension extendee
	0, // [0:0] is the sub-list for field type_name
}

func init() { file_entitlements_v1_entitlements_proto_init() }
func file_entitlements_v1_entitlements_proto_init() {
	if File_entitlements_v1_entitlements_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_entitlements_v1_entitlements_proto_rawDesc), len(file_entitlements_v1_entitlements_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   2,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_entitlements_v1_entitlements_proto_goTypes,
		DependencyIndexes: file_entitlements_v1_entitlements_proto_depIdxs,
		MessageInfos:      file_entitlements_v1_entitlements_proto_msgTypes,
	}.Build()
	File_entitlements_v1_entitlements_proto = out.File
	file_entitlements_v1_entitlements_proto_goTypes = nil
	file_entitlements_v1_entitlements_proto_depIdxs = nil
}
