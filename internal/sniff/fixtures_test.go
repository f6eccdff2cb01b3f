package sniff

// Pre-compressed copies of sampleSQL for the codecs Go has no writer for.

// sampleSQL compressed with bzip2 -9.
var bzip2SQL = []byte{
	0x42, 0x5a, 0x68, 0x39, 0x31, 0x41, 0x59, 0x26, 0x53, 0x59, 0xed, 0xaa,
	0xe6, 0x24, 0x00, 0x00, 0x16, 0xdf, 0x80, 0x40, 0x10, 0x40, 0xe4, 0x00,
	0x08, 0x3a, 0x2f, 0xdf, 0x20, 0x2e, 0x27, 0x1e, 0x40, 0x20, 0x00, 0x68,
	0x44, 0x9e, 0x89, 0xea, 0x0d, 0x32, 0x19, 0x34, 0xcd, 0x43, 0x40, 0x01,
	0xa9, 0xa4, 0xda, 0x20, 0xd0, 0x00, 0x0d, 0x34, 0xd3, 0x20, 0x20, 0xa2,
	0x6d, 0x60, 0xa0, 0x41, 0x07, 0x70, 0xa3, 0x33, 0xf0, 0x79, 0x75, 0xfb,
	0xf0, 0x93, 0x1c, 0x18, 0x81, 0x73, 0x6e, 0xb0, 0x17, 0x33, 0x5c, 0x2a,
	0xa5, 0xfb, 0x3e, 0x7a, 0xa4, 0xad, 0x0b, 0xdd, 0x74, 0x72, 0x64, 0x0a,
	0x97, 0x25, 0xdd, 0x58, 0xc2, 0x36, 0xe8, 0xc3, 0x53, 0x4a, 0x63, 0x5c,
	0x33, 0x88, 0x48, 0x8c, 0x49, 0xe8, 0x7c, 0xbb, 0x8c, 0x80, 0x28, 0x41,
	0x06, 0x2d, 0xf4, 0x7c, 0x94, 0x2b, 0xf1, 0x77, 0x24, 0x53, 0x85, 0x09,
	0x0e, 0xda, 0xae, 0x62, 0x40,
}

// A 7z archive holding sampleSQL as its only member, dump.sql, stored
// with the Copy method.
var sevenZipSQL = []byte{
	0x37, 0x7a, 0xbc, 0xaf, 0x27, 0x1c, 0x00, 0x04, 0x13, 0x60, 0x87, 0xa2,
	0x75, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x32, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xc1, 0xb7, 0xa2, 0xf7, 0x43, 0x52, 0x45, 0x41,
	0x54, 0x45, 0x20, 0x54, 0x41, 0x42, 0x4c, 0x45, 0x20, 0x75, 0x73, 0x65,
	0x72, 0x73, 0x20, 0x28, 0x0a, 0x20, 0x20, 0x20, 0x20, 0x69, 0x64, 0x20,
	0x73, 0x65, 0x72, 0x69, 0x61, 0x6c, 0x20, 0x50, 0x52, 0x49, 0x4d, 0x41,
	0x52, 0x59, 0x20, 0x4b, 0x45, 0x59, 0x2c, 0x0a, 0x20, 0x20, 0x20, 0x20,
	0x6e, 0x61, 0x6d, 0x65, 0x20, 0x74, 0x65, 0x78, 0x74, 0x20, 0x4e, 0x4f,
	0x54, 0x20, 0x4e, 0x55, 0x4c, 0x4c, 0x0a, 0x29, 0x3b, 0x0a, 0x49, 0x4e,
	0x53, 0x45, 0x52, 0x54, 0x20, 0x49, 0x4e, 0x54, 0x4f, 0x20, 0x75, 0x73,
	0x65, 0x72, 0x73, 0x20, 0x28, 0x6e, 0x61, 0x6d, 0x65, 0x29, 0x20, 0x56,
	0x41, 0x4c, 0x55, 0x45, 0x53, 0x20, 0x28, 0x27, 0x61, 0x6c, 0x69, 0x63,
	0x65, 0x27, 0x29, 0x3b, 0x0a, 0x01, 0x04, 0x06, 0x00, 0x01, 0x09, 0x75,
	0x00, 0x07, 0x0b, 0x01, 0x00, 0x01, 0x01, 0x00, 0x0c, 0x75, 0x0a, 0x01,
	0x84, 0x3c, 0x6a, 0xc0, 0x00, 0x00, 0x05, 0x01, 0x11, 0x13, 0x00, 0x64,
	0x00, 0x75, 0x00, 0x6d, 0x00, 0x70, 0x00, 0x2e, 0x00, 0x73, 0x00, 0x71,
	0x00, 0x6c, 0x00, 0x00, 0x00, 0x00, 0x00,
}
